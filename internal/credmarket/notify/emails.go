package notify

import (
	"bytes"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
	"time"
)

const approvalSubject = "Your Company Has Been Approved on CredMarket!"

var approvalText = texttemplate.Must(texttemplate.New("approval.txt").Parse(`Hi {{.FirstName}},

Great news! {{.CompanyName}} has been approved on CredMarket.

You can now login and start using the platform:
Login here: {{.LoginURL}}

What you can do now:
- Browse listings from verified colleagues
- Post items for sale
- Message other users safely

Welcome to CredMarket!

Best regards,
The CredMarket Team

---
Questions? Contact support@credmarket.com
`))

var approvalHTML = htmltemplate.Must(htmltemplate.New("approval.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #059669;">Company Approved!</h1>
    <p>Hi <strong>{{.FirstName}}</strong>,</p>
    <p>Great news! <strong>{{.CompanyName}}</strong> has been approved on CredMarket.</p>
    <p style="text-align: center;">
      <a href="{{.LoginURL}}" style="display: inline-block; background: #10b981; color: white; padding: 12px 30px; text-decoration: none; border-radius: 8px; font-weight: bold;">Login Now</a>
    </p>
    <ul>
      <li>Browse listings from verified colleagues</li>
      <li>Post items for sale</li>
      <li>Message other users safely</li>
    </ul>
    <p>Your email (<strong>{{.Email}}</strong>) is already verified, so you can login immediately!</p>
    <p><strong>Welcome to CredMarket!</strong><br>The CredMarket Team</p>
    <p style="color: #6b7280; font-size: 12px;">This is an automated message. Please do not reply to this email.</p>
  </div>
</body>
</html>
`))

var otpText = texttemplate.Must(texttemplate.New("otp.txt").Parse(`Hi {{.FirstName}},

Your CredMarket verification code is: {{.Code}}

The code expires in {{.Minutes}} minutes. If you did not sign up, ignore this email.

The CredMarket Team
`))

type approvalData struct {
	FirstName   string
	CompanyName string
	Email       string
	LoginURL    string
}

// ApprovalEmail is sent to each user approved through company approval.
func ApprovalEmail(siteURL, to, firstName, companyName string) Message {
	data := approvalData{
		FirstName:   greetingName(firstName),
		CompanyName: companyName,
		Email:       to,
		LoginURL:    strings.TrimRight(siteURL, "/") + "/login",
	}

	return Message{
		To:      to,
		Subject: approvalSubject,
		Text:    render(approvalText, data),
		HTML:    render(approvalHTML, data),
		Kind:    KindApproval,
	}
}

// OTPEmail carries a verification code valid for validity.
func OTPEmail(to, firstName, code string, validity time.Duration) Message {
	minutes := int(validity.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	return Message{
		To:      to,
		Subject: "Your CredMarket verification code",
		Text: render(otpText, struct {
			FirstName string
			Code      string
			Minutes   int
		}{greetingName(firstName), code, minutes}),
		Kind: KindOTP,
	}
}

func greetingName(first string) string {
	if first = strings.TrimSpace(first); first == "" {
		return "there"
	}
	return first
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// render panics on template errors; the templates are static and their data
// types fixed, so an error here is a programming mistake.
func render(t executor, data any) string {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		panic(err)
	}
	return b.String()
}
