package credmarket_test

import (
	"testing"

	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/stretchr/testify/require"
)

func TestAdminConsole(t *testing.T) {
	s := setupServer(t)
	ctx := t.Context()
	staff := s.staff(t)

	s.signupAndVerify(t, "d@globex.example")

	dash, err := staff.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, dash.WaitlistUsers)
	require.Len(t, dash.RecentWaitlisted, 1)

	waiting, err := staff.ListCompanies(ctx, "waitlist")
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	globex := waiting[0]

	res, err := staff.ApproveCompany(ctx, globex.ID)
	require.NoError(t, err)
	require.True(t, res.Transitioned)
	require.Equal(t, 1, res.ApprovedUsers)

	users, err := staff.ListUsers(ctx, credsdk.UserQuery{CompanyID: globex.ID})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "approved", users[0].Status)

	suspended, err := staff.SetUserStatus(ctx, users[0].ID, "suspended")
	require.NoError(t, err)
	require.False(t, suspended.Active)

	_, err = s.client.Login(ctx, "d@globex.example", userPassword, "")
	requireAPIError(t, err, credsdk.ErrorCodeAccountSuspended)

	_, err = staff.WaitlistCompany(ctx, globex.ID)
	require.NoError(t, err)
	_, err = staff.RejectCompany(ctx, globex.ID)
	require.NoError(t, err)
	_, err = staff.WaitlistCompany(ctx, globex.ID)
	requireAPIError(t, err, credsdk.ErrorCodeInvalidTransition)

	require.NoError(t, staff.DeleteCompany(ctx, globex.ID))
	_, err = staff.GetCompany(ctx, globex.ID)
	requireAPIError(t, err, credsdk.ErrorCodeCompanyNotFound)
}

func TestAdminRequiresStaff(t *testing.T) {
	s := setupServer(t)
	ctx := t.Context()

	staff := s.staff(t)
	_, err := staff.AddCompany(ctx, credsdk.AddCompanyRequest{Name: "Initech", Domain: "initech.example"})
	require.NoError(t, err)

	verify := s.signupAndVerify(t, "e@initech.example")
	member := s.client.NewSession(verify.SessionToken)

	_, err = member.Dashboard(ctx)
	requireAPIError(t, err, credsdk.ErrorCodeForbidden)
}
