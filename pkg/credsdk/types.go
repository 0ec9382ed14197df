package credsdk

import (
	"net/url"
	"strconv"
	"time"
)

// Values of the "next" field. They replace the redirects a browser flow
// would follow.
const (
	NextVerify         = "verify"
	NextWaitlist       = "waitlist"
	NextHome           = "home"
	NextAdminDashboard = "admin_dashboard"
	NextSignup         = "signup"
)

// ============================================================================
// Requests (sent form-encoded)
// ============================================================================

type SignupRequest struct {
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

func (r SignupRequest) Values() url.Values {
	v := url.Values{}
	v.Set("email", r.Email)
	v.Set("password", r.Password)
	setProfile(v, r.FirstName, r.LastName, r.Phone, r.City, r.Area, r.DisplayName, r.ShowRealName, r.Latitude, r.Longitude)
	return v
}

type ProfileRequest struct {
	FirstName      string
	LastName       string
	Phone          string
	City           string
	Area           string
	DisplayName    string
	ShowRealName   bool
	NotifyMessages bool
	NotifyListings bool
	Latitude       *float64
	Longitude      *float64
}

func (r ProfileRequest) Values() url.Values {
	v := url.Values{}
	setProfile(v, r.FirstName, r.LastName, r.Phone, r.City, r.Area, r.DisplayName, r.ShowRealName, r.Latitude, r.Longitude)
	setBool(v, "notify_messages", r.NotifyMessages)
	setBool(v, "notify_listings", r.NotifyListings)
	return v
}

type AddCompanyRequest struct {
	Name        string
	Domain      string
	Status      string // defaults to approved
	Description string
	Website     string
}

func (r AddCompanyRequest) Values() url.Values {
	v := url.Values{}
	v.Set("name", r.Name)
	v.Set("domain", r.Domain)
	setIf(v, "status", r.Status)
	setIf(v, "description", r.Description)
	setIf(v, "website", r.Website)
	return v
}

// UserQuery filters the admin user list.
type UserQuery struct {
	Status    string
	CompanyID string
	Verified  *bool
	Limit     int
}

func (q UserQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "status", q.Status)
	setIf(v, "company_id", q.CompanyID)
	if q.Verified != nil {
		v.Set("verified", strconv.FormatBool(*q.Verified))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func setProfile(v url.Values, first, last, phone, city, area, display string, showReal bool, lat, long *float64) {
	setIf(v, "first_name", first)
	setIf(v, "last_name", last)
	setIf(v, "phone", phone)
	v.Set("city", city)
	setIf(v, "area", area)
	setIf(v, "display_name", display)
	setBool(v, "show_real_name", showReal)
	if lat != nil {
		v.Set("latitude", strconv.FormatFloat(*lat, 'f', -1, 64))
	}
	if long != nil {
		v.Set("longitude", strconv.FormatFloat(*long, 'f', -1, 64))
	}
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setBool(v url.Values, key string, b bool) {
	if b {
		v.Set(key, "on")
	}
}

// ============================================================================
// Resources
// ============================================================================

type CompanyInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Domain      string     `json:"domain"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	Website     string     `json:"website,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UserInfo struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	DisplayName      string    `json:"display_name,omitempty"`
	PublicName       string    `json:"public_name"`
	Phone            string    `json:"phone,omitempty"`
	City             string    `json:"city"`
	Area             string    `json:"area,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	ShowRealName     bool      `json:"show_real_name"`
	NotifyMessages   bool      `json:"notify_messages"`
	NotifyListings   bool      `json:"notify_listings"`
	CompanyID        string    `json:"company_id,omitempty"`
	Status           string    `json:"status"`
	EmailVerified    bool      `json:"email_verified"`
	Active           bool      `json:"active"`
	Staff            bool      `json:"staff,omitempty"`
	MFAEnabled       bool      `json:"mfa_enabled,omitempty"`
	CanCreateListing bool      `json:"can_create_listing"`
	CreatedAt        time.Time `json:"created_at"`
}

// ============================================================================
// Onboarding responses
// ============================================================================

type SignupResponse struct {
	Message          string    `json:"message"`
	Next             string    `json:"next"`
	UserID           string    `json:"user_id"`
	CompanyStatus    string    `json:"company_status"`
	Waitlisted       bool      `json:"waitlisted"`
	PendingToken     string    `json:"pending_token"`
	PendingExpiresAt time.Time `json:"pending_expires_at"`
}

type ResendResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyResponse carries SessionToken when Next is NextHome or
// NextAdminDashboard, WaitlistToken when Next is NextWaitlist.
type VerifyResponse struct {
	Message       string     `json:"message"`
	Next          string     `json:"next"`
	User          UserInfo   `json:"user"`
	SessionToken  string     `json:"session_token,omitempty"`
	WaitlistToken string     `json:"waitlist_token,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type LoginResponse struct {
	Message      string    `json:"message"`
	Next         string    `json:"next"`
	User         UserInfo  `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type WaitlistResponse struct {
	Message string       `json:"message"`
	User    UserInfo     `json:"user"`
	Company *CompanyInfo `json:"company,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"otpauth_url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// ============================================================================
// Admin responses
// ============================================================================

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type DashboardResponse struct {
	TotalUsers        int            `json:"total_users"`
	ApprovedUsers     int            `json:"approved_users"`
	WaitlistUsers     int            `json:"waitlist_users"`
	PendingUsers      int            `json:"pending_users"`
	CompaniesByStatus map[string]int `json:"companies_by_status"`
	TopCities         []CityCount    `json:"top_cities"`
	RecentWaitlisted  []CompanyInfo  `json:"recent_waitlisted"`
}

type ListCompaniesResponse struct {
	Companies []CompanyInfo `json:"companies"`
}

type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// ApproveCompanyResponse reports an approval. Transitioned is false when the
// company was already approved; ApprovedUsers counts the users propagation
// moved from waitlist to approved.
type ApproveCompanyResponse struct {
	Company             CompanyInfo `json:"company"`
	Transitioned        bool        `json:"transitioned"`
	ApprovedUsers       int         `json:"approved_users"`
	NotificationsQueued int         `json:"notifications_queued"`
	Message             string      `json:"message"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz; only readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database   string `json:"database"`
	Revocation string `json:"revocation,omitempty"`
}
