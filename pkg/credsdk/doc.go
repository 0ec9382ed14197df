/*
Package credsdk is the Go client for the CredMarket onboarding API, and the
home of the wire types the server writes.

# Client vs Session

Client covers the unauthenticated steps of onboarding: signup, OTP resend,
verification, login and the waitlist holding page. A successful login or
verification hands back a session token; wrap it in a Session for the
authenticated routes:

	c := credsdk.NewClient("http://localhost:8080")

	signup, err := c.Signup(ctx, credsdk.SignupRequest{
		Email:    "alex@acme.com",
		Password: "correct horse",
		City:     "Sydney",
	})
	// ... read the code from the email ...
	v, err := c.Verify(ctx, signup.PendingToken, code)
	if v.Next == credsdk.NextWaitlist {
		view, err := c.Waitlist(ctx, v.WaitlistToken)
	}

	s := c.NewSession(v.SessionToken)
	me, err := s.Me(ctx)

Operator routes (companies, users, dashboard) are Session methods too and
fail with ErrorCodeForbidden for non-staff sessions.

# Errors

Every non-2xx response becomes an *APIError carrying the error code, the
human message, and where relevant the offending form field or the next
step. A login by an unverified user, for instance, returns
ErrorCodeEmailNotVerified with Next set to NextVerify and a fresh
PendingToken:

	_, err := c.Login(ctx, email, password, "")
	var apiErr *credsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == credsdk.ErrorCodeEmailNotVerified {
		// continue with c.Verify(ctx, apiErr.PendingToken, code)
	}
*/
package credsdk
