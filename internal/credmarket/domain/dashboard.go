package domain

// CityCount is one row of the signups-by-city breakdown.
type CityCount struct {
	City  string
	Count int
}

// Dashboard is the operator overview.
type Dashboard struct {
	TotalUsers    int
	ApprovedUsers int
	WaitlistUsers int
	PendingUsers  int

	CompaniesByStatus map[CompanyStatus]int

	TopCities        []CityCount
	RecentWaitlisted []Company
}

// UserFilter narrows an admin user listing. Zero values match everything.
type UserFilter struct {
	Status    UserStatus
	CompanyID string
	Verified  *bool
	Limit     int
}
