package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// RegisterInput is what signup hands to Register once validated.
type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	City         string
	Area         string
	DisplayName  string
	ShowRealName bool
	Latitude     *float64
	Longitude    *float64
}

// ProfileInput holds the fields a user may edit about themselves.
type ProfileInput struct {
	FirstName      string   `form:"first_name" validate:"max=150"`
	LastName       string   `form:"last_name" validate:"max=150"`
	Phone          string   `form:"phone" validate:"max=15"`
	City           string   `form:"city" validate:"required,max=100"`
	Area           string   `form:"area" validate:"max=100"`
	DisplayName    string   `form:"display_name" validate:"max=50"`
	ShowRealName   bool     `form:"show_real_name"`
	NotifyMessages bool     `form:"notify_messages"`
	NotifyListings bool     `form:"notify_listings"`
	Latitude       *float64 `form:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `form:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type UserService struct {
	Store  store.Store
	Events events.Publisher
	Clock  Clock
}

// Register creates a member of company. The initial status follows the
// company: approved companies leave only email verification outstanding,
// anything else starts on the waitlist. st is normally the signup
// transaction. The unique index on email is the real duplicate guard.
func (s *UserService) Register(ctx context.Context, st store.Store, in RegisterInput, company domain.Company) (domain.User, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Clock.now()
	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Email:          in.Email,
		PasswordHash:   hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		City:           in.City,
		Area:           in.Area,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		DisplayName:    in.DisplayName,
		ShowRealName:   in.ShowRealName,
		NotifyMessages: true,
		NotifyListings: true,
		CompanyID:      ptr(company.ID),
		Status:         domain.InitialUserStatus(company.Status),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := st.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// MarkVerifiedAndAdvance records email verification. Pending users become
// approved; waitlisted users stay put until their company is approved.
func (s *UserService) MarkVerifiedAndAdvance(ctx context.Context, st store.Store, userID string) (domain.User, error) {
	if err := st.Users().MarkVerifiedAndAdvance(ctx, userID, s.Clock.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("mark verified: %w", err)
	}
	return st.Users().GetUserByID(ctx, userID)
}

// CanCreateListing is the posting gate.
func (s *UserService) CanCreateListing(u domain.User) bool {
	return u.CanCreateListing()
}

// Authenticate checks credentials only; status gating is up to the caller.
// Unknown emails still pay for a hash so timing does not reveal them.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		cryptox.DummyVerify(password)
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerify(password)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unreadable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status", "Unknown user status.")
	}
	return s.Store.Users().ListUsers(ctx, f)
}

// SetStatus is the admin user action. Suspending deactivates the account,
// approving reactivates it; other statuses keep the active flag.
func (s *UserService) SetStatus(ctx context.Context, userID string, status domain.UserStatus) (domain.User, error) {
	if !status.Valid() {
		return domain.User{}, invalid("status", "Unknown user status.")
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		active := u.Active
		switch status {
		case domain.UserSuspended:
			active = false
		case domain.UserApproved:
			active = true
		}

		now := s.Clock.now()
		if err := tx.Users().SetUserStatus(ctx, userID, status, active, now); err != nil {
			return fmt.Errorf("set user status: %w", err)
		}
		u.Status, u.Active, u.UpdatedAt = status, active, now
		out = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user status changed",
		slog.String("user_id", out.ID),
		slog.String("status", string(out.Status)),
		slog.Bool("active", out.Active),
	)
	publish(ctx, s.Events, events.New(events.UserStatusChanged, out.ID, out.UpdatedAt, map[string]any{
		"status": string(out.Status),
		"active": out.Active,
	}))
	return out, nil
}

// UpdateProfile writes the self-service profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (domain.User, error) {
	if err := validateStruct(in); err != nil {
		return domain.User{}, err
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Phone = in.Phone
	u.City = in.City
	u.Area = in.Area
	u.DisplayName = in.DisplayName
	u.ShowRealName = in.ShowRealName
	u.NotifyMessages = in.NotifyMessages
	u.NotifyListings = in.NotifyListings
	u.Latitude = in.Latitude
	u.Longitude = in.Longitude
	u.UpdatedAt = s.Clock.now()

	if err := s.Store.Users().UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// CreateStaff bootstraps an operator account: approved, verified, active,
// and not attached to any company.
func (s *UserService) CreateStaff(ctx context.Context, email, password string) (domain.User, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return domain.User{}, invalid("email", "Enter a valid email address.")
	}
	if len(password) < 8 {
		return domain.User{}, invalid("password", "Password must be at least 8 characters.")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Clock.now()
	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Email:          normalized,
		PasswordHash:   hash,
		DisplayName:    "Admin",
		NotifyMessages: true,
		NotifyListings: true,
		Status:         domain.UserApproved,
		EmailVerified:  true,
		Active:         true,
		Staff:          true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("create staff: %w", err)
	}
	return u, nil
}
