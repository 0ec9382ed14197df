package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/metrics"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// Where the client should go next.
const (
	LandingHome           = "home"
	LandingAdminDashboard = "admin_dashboard"
)

type SignupInput struct {
	Email        string   `form:"email" validate:"required,max=254,contains=@"`
	Password     string   `form:"password" validate:"required,max=128"`
	FirstName    string   `form:"first_name" validate:"max=150"`
	LastName     string   `form:"last_name" validate:"max=150"`
	Phone        string   `form:"phone" validate:"max=15"`
	City         string   `form:"city" validate:"required,max=100"`
	Area         string   `form:"area" validate:"max=100"`
	DisplayName  string   `form:"display_name" validate:"max=50"`
	ShowRealName bool     `form:"show_real_name"`
	Latitude     *float64 `form:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `form:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type SignupResult struct {
	User       domain.User
	Company    domain.Company
	Resolution ResolutionKind
	// PendingToken carries the user to the verify step.
	PendingToken IssuedToken
	Waitlisted   bool
	Message      string
}

type VerifyOutcome int

const (
	VerifyLoggedIn VerifyOutcome = iota + 1
	VerifyWaitlisted
)

type VerifyResult struct {
	Outcome VerifyOutcome
	User    domain.User
	// Session is set for VerifyLoggedIn, WaitlistToken for VerifyWaitlisted.
	Session       IssuedToken
	WaitlistToken IssuedToken
	Landing       string
	Message       string
}

type LoginInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	TOTPCode string `form:"totp_code"`
}

// LoginResult is partly filled even when Login fails: Message explains the
// refusal and PendingToken is set with ErrEmailNotVerified so the client can
// go straight back to the verify step.
type LoginResult struct {
	User         domain.User
	Session      IssuedToken
	PendingToken IssuedToken
	Landing      string
	Message      string
}

// WaitlistView is what the waitlist holding page shows.
type WaitlistView struct {
	User    domain.User
	Company *domain.Company
}

// SignupService runs the signup, verification and login workflow. State
// between steps travels in signed tokens, never in server-side sessions.
type SignupService struct {
	Store     store.Store
	Companies *CompanyService
	Users     *UserService
	OTPs      *OTPService
	Sessions  *SessionService
	MFA       *MFAService
	Notifier  Notifier
	Events    events.Publisher
}

// Signup registers a user against the company for their email domain and
// sends a verification code. Company resolution, user creation and the first
// code happen in one transaction; email and events follow the commit.
func (s *SignupService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate.
	in.Email = strings.TrimSpace(in.Email)
	in.City = strings.TrimSpace(in.City)
	if err := validateStruct(in); err != nil {
		return SignupResult{}, err
	}

	// 2. Normalise and derive the domain.
	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return SignupResult{}, invalid("email", "Enter a valid email address.")
	}
	_, emailDomain, _ := domain.SplitEmail(email)

	// 3. Friendly duplicate check. The unique index decides races.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return SignupResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return SignupResult{}, fmt.Errorf("check email: %w", err)
	}

	// 4. Resolve company, register, issue the code.
	var (
		res  Resolution
		user domain.User
		code domain.OTP
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if res, err = s.Companies.resolveOrCreate(ctx, tx, emailDomain); err != nil {
			return err
		}
		if user, err = s.Users.Register(ctx, tx, RegisterInput{
			Email:        email,
			Password:     in.Password,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Phone:        strings.TrimSpace(in.Phone),
			City:         in.City,
			Area:         strings.TrimSpace(in.Area),
			DisplayName:  strings.TrimSpace(in.DisplayName),
			ShowRealName: in.ShowRealName,
			Latitude:     in.Latitude,
			Longitude:    in.Longitude,
		}, res.Company); err != nil {
			return err
		}
		code, err = s.OTPs.Issue(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			log.Warn("signup lost duplicate email race", slog.String("domain", emailDomain))
		}
		return SignupResult{}, err
	}

	// 5. After commit.
	s.sendOTP(ctx, user, code)

	waitlisted := user.Status == domain.UserWaitlist
	path := "approved"
	if waitlisted {
		path = "waitlist"
	}
	metrics.SignupsTotal.WithLabelValues(path).Inc()

	var evs []events.Event
	if res.Created() {
		evs = append(evs, events.New(events.CompanyCreated, res.Company.ID, res.Company.CreatedAt, map[string]any{
			"domain": res.Company.Domain,
			"status": string(res.Company.Status),
			"source": "signup",
		}))
	}
	evs = append(evs, events.New(events.UserRegistered, user.ID, user.CreatedAt, map[string]any{
		"company_id": res.Company.ID,
		"status":     string(user.Status),
	}))
	publish(ctx, s.Events, evs...)

	log.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("company_id", res.Company.ID),
		slog.String("resolution", res.Kind.String()),
		slog.String("status", string(user.Status)),
	)

	// 6. Hand back the pending token.
	pending, err := s.Sessions.Issue(jwtx.PurposePending, user)
	if err != nil {
		return SignupResult{}, err
	}

	msg := fmt.Sprintf("OTP sent to %s. Please verify to complete registration.", email)
	if waitlisted {
		msg = fmt.Sprintf("Your company (%s) is being reviewed. Please verify your email to complete registration.", emailDomain)
	}

	return SignupResult{
		User:         user,
		Company:      res.Company,
		Resolution:   res.Kind,
		PendingToken: pending,
		Waitlisted:   waitlisted,
		Message:      msg,
	}, nil
}

// ResendOTP issues another code for a user still waiting to verify.
func (s *SignupService) ResendOTP(ctx context.Context, pendingToken string) (time.Time, error) {
	u, _, err := s.pendingUser(ctx, pendingToken)
	if err != nil {
		return time.Time{}, err
	}
	if u.EmailVerified {
		return time.Time{}, ErrAlreadyVerified
	}

	var code domain.OTP
	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		code, err = s.OTPs.Issue(ctx, tx, u.ID)
		return err
	}); err != nil {
		return time.Time{}, err
	}

	s.sendOTP(ctx, u, code)
	return code.ExpiresAt, nil
}

// Verify checks the code for the user named by pendingToken. On success the
// email is marked verified and a pending user becomes approved in the same
// transaction as the code is consumed, and the pending token is spent.
// Approved users are logged in; waitlisted users get a waitlist token instead.
func (s *SignupService) Verify(ctx context.Context, pendingToken, code string) (VerifyResult, error) {
	log := slogx.FromContext(ctx)

	u, pending, err := s.pendingUser(ctx, pendingToken)
	if err != nil {
		return VerifyResult{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		metrics.OTPVerificationsTotal.WithLabelValues(OTPNotFound.String()).Inc()
		return VerifyResult{}, ErrInvalidOTP
	}

	var result OTPResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if result, err = s.OTPs.Verify(ctx, tx, u.ID, code); err != nil {
			return err
		}
		if result != OTPSuccess {
			return nil
		}
		u, err = s.Users.MarkVerifiedAndAdvance(ctx, tx, u.ID)
		return err
	})
	if err != nil {
		return VerifyResult{}, err
	}

	metrics.OTPVerificationsTotal.WithLabelValues(result.String()).Inc()
	switch result {
	case OTPExpired:
		log.Warn("expired otp presented", slog.String("user_id", u.ID))
		return VerifyResult{}, ErrOTPExpired
	case OTPNotFound:
		log.Warn("invalid otp presented", slog.String("user_id", u.ID))
		return VerifyResult{}, ErrInvalidOTP
	}

	if err := s.Sessions.Revoke(ctx, pending); err != nil {
		log.Warn("pending token not revoked", slog.String("user_id", u.ID), slog.Any("error", err))
	}

	evs := []events.Event{events.New(events.UserVerified, u.ID, u.UpdatedAt, map[string]any{"status": string(u.Status)})}
	if u.Status == domain.UserApproved {
		evs = append(evs, events.New(events.UserApproved, u.ID, u.UpdatedAt, map[string]any{"reason": "email_verified"}))
	}
	publish(ctx, s.Events, evs...)

	if u.Status == domain.UserWaitlist {
		tok, err := s.Sessions.Issue(jwtx.PurposeWaitlist, u)
		if err != nil {
			return VerifyResult{}, err
		}
		log.Info("email verified, waiting on company", slog.String("user_id", u.ID))
		return VerifyResult{
			Outcome:       VerifyWaitlisted,
			User:          u,
			WaitlistToken: tok,
			Message:       "Email verified! Your account is pending company approval.",
		}, nil
	}

	if err := loginGate(u); err != nil {
		return VerifyResult{User: u}, err
	}

	session, err := s.Sessions.Issue(jwtx.PurposeSession, u, "pwd", "email")
	if err != nil {
		return VerifyResult{}, err
	}
	log.Info("email verified, logged in", slog.String("user_id", u.ID))
	return VerifyResult{
		Outcome: VerifyLoggedIn,
		User:    u,
		Session: session,
		Landing: landingFor(u),
		Message: "Email verified successfully! Welcome to CredMarket.",
	}, nil
}

// Waitlist loads the holding page for a verified, waitlisted user.
func (s *SignupService) Waitlist(ctx context.Context, waitlistToken string) (WaitlistView, error) {
	claims, err := s.Sessions.VerifyPurpose(ctx, waitlistToken, jwtx.PurposeWaitlist)
	if err != nil {
		return WaitlistView{}, ErrNoWaitlistRegistration
	}

	u, err := s.Users.Get(ctx, claims.Subject)
	if err != nil {
		return WaitlistView{}, err
	}

	view := WaitlistView{User: u}
	if u.CompanyID != nil {
		c, err := s.Companies.Get(ctx, *u.CompanyID)
		switch {
		case err == nil:
			view.Company = &c
		case !errors.Is(err, ErrCompanyNotFound):
			return WaitlistView{}, err
		}
	}
	return view, nil
}

// Login authenticates and gates on verification and status. Staff with MFA
// enabled also need a TOTP code.
func (s *SignupService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return LoginResult{Message: "Invalid email or password."}, err
		}
		return LoginResult{}, err
	}

	// Unverified users go back to the verify step with a fresh code.
	if !u.EmailVerified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		return s.reenterVerification(ctx, u)
	}

	if err := loginGate(u); err != nil {
		metrics.LoginsTotal.WithLabelValues(loginRefusal(err)).Inc()
		log.Info("login refused", slog.String("user_id", u.ID), slog.String("reason", err.Error()))
		return LoginResult{User: u, Message: s.refusalMessage(ctx, u, err)}, err
	}

	amr := []string{"pwd"}
	if s.MFA != nil {
		if err := s.MFA.Validate(u, strings.TrimSpace(in.TOTPCode)); err != nil {
			metrics.LoginsTotal.WithLabelValues("mfa").Inc()
			return LoginResult{User: u, Message: "Enter the code from your authenticator app."}, err
		}
		if u.MFAEnabled() {
			amr = append(amr, "otp")
		}
	}

	session, err := s.Sessions.Issue(jwtx.PurposeSession, u, amr...)
	if err != nil {
		return LoginResult{}, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	log.Info("user logged in", slog.String("user_id", u.ID), slog.Bool("staff", u.Staff))

	msg := fmt.Sprintf("Welcome back, %s!", greeting(u))
	if u.Staff {
		msg = "Welcome back, Admin!"
	}
	return LoginResult{
		User:    u,
		Session: session,
		Landing: landingFor(u),
		Message: msg,
	}, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *SignupService) Logout(ctx context.Context, claims jwtx.Claims) error {
	if err := s.Sessions.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", claims.Subject))
	return nil
}

func (s *SignupService) reenterVerification(ctx context.Context, u domain.User) (LoginResult, error) {
	var code domain.OTP
	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		code, err = s.OTPs.Issue(ctx, tx, u.ID)
		return err
	}); err != nil {
		return LoginResult{}, err
	}
	s.sendOTP(ctx, u, code)

	pending, err := s.Sessions.Issue(jwtx.PurposePending, u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		User:         u,
		PendingToken: pending,
		Message:      "Please verify your email first.",
	}, ErrEmailNotVerified
}

// pendingUser resolves a pending token to its user. A token for an account
// that no longer exists sends the caller back to signup like a missing one.
func (s *SignupService) pendingUser(ctx context.Context, pendingToken string) (domain.User, jwtx.Claims, error) {
	claims, err := s.Sessions.VerifyPurpose(ctx, pendingToken, jwtx.PurposePending)
	if errors.Is(err, ErrInvalidToken) {
		return domain.User{}, jwtx.Claims{}, ErrNoPendingVerification
	}
	if err != nil {
		return domain.User{}, jwtx.Claims{}, err
	}

	u, err := s.Users.Get(ctx, claims.Subject)
	if errors.Is(err, ErrUserNotFound) {
		slogx.FromContext(ctx).Warn("pending token for missing user", slog.String("user_id", claims.Subject))
		return domain.User{}, jwtx.Claims{}, ErrPendingUserGone
	}
	if err != nil {
		return domain.User{}, jwtx.Claims{}, err
	}
	return u, claims, nil
}

// sendOTP queues the verification email. A dropped message is not an
// error: the user can ask for another code.
func (s *SignupService) sendOTP(ctx context.Context, u domain.User, code domain.OTP) {
	msg := notify.OTPEmail(u.Email, u.FirstName, code.Code, code.ExpiresAt.Sub(code.CreatedAt))
	if !notifierOrDiscard(s.Notifier).Submit(msg) {
		slogx.FromContext(ctx).Warn("otp email not queued", slog.String("user_id", u.ID))
	}
}

func (s *SignupService) refusalMessage(ctx context.Context, u domain.User, err error) string {
	switch {
	case errors.Is(err, ErrCompanyUnderReview):
		d := u.EmailDomain()
		if u.CompanyID != nil {
			if c, cerr := s.Companies.Get(ctx, *u.CompanyID); cerr == nil {
				d = c.Domain
			}
		}
		return fmt.Sprintf("Your company (%s) is being reviewed by our team. "+
			"You'll receive an email once approved (usually within 1-2 business days).", d)
	case errors.Is(err, ErrAccountRejected):
		return "Your account registration was not approved."
	default:
		return "Your account has been suspended."
	}
}

// loginGate refuses statuses that may not hold a session.
func loginGate(u domain.User) error {
	switch {
	case u.Status == domain.UserWaitlist:
		return ErrCompanyUnderReview
	case u.Status == domain.UserSuspended:
		return ErrAccountSuspended
	case u.Status == domain.UserRejected:
		return ErrAccountRejected
	case !u.Active:
		return ErrAccountSuspended
	}
	return nil
}

func loginRefusal(err error) string {
	switch {
	case errors.Is(err, ErrCompanyUnderReview):
		return "waitlist"
	case errors.Is(err, ErrAccountRejected):
		return "rejected"
	default:
		return "suspended"
	}
}

func landingFor(u domain.User) string {
	if u.Staff {
		return LandingAdminDashboard
	}
	return LandingHome
}

func greeting(u domain.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.PublicName()
}
