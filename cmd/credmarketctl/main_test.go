package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/app"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against a throwaway sqlite database in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "credmarket.db"))
	t.Setenv("PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("SMTP_HOST", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "Migrations applied (sqlite)")
}

func TestCreateStaffAndApprove(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "create-staff", "--email", "ops@credmarket.test", "--password", "staff password")
	require.NoError(t, err)
	require.Contains(t, out, "Created staff account ops@credmarket.test")
	require.NotContains(t, out, "Password:")

	_, err = run(t, dir, "create-staff", "--email", "ops@credmarket.test")
	require.ErrorContains(t, err, "already exists")

	out, err = run(t, dir, "create-staff", "--email", "second@credmarket.test")
	require.NoError(t, err)
	require.Contains(t, out, "Password: ")

	_, err = run(t, dir, "approve-company", "unknown.com")
	require.ErrorContains(t, err, `company with domain "unknown.com" not found`)

	_, err = run(t, dir, "approve-company", "unknown.com", "--approver", "nobody@credmarket.test")
	require.ErrorContains(t, err, "not found")
}

func TestCompanyCommandsRequireDomain(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"approve-company", "reject-company", "waitlist-company"} {
		_, err := run(t, dir, name)
		require.Error(t, err, name)
		require.True(t, strings.Contains(err.Error(), "accepts 1 arg"), err.Error())
	}
}

func TestApproveCompanyPropagatesAndReports(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "create-staff", "--email", "ops@credmarket.test", "--password", "staff password")
	require.NoError(t, err)

	// Seed a waitlisted company with one verified member.
	cfg := app.LoadConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := app.OpenDeps(context.Background(), cfg, logger)
	require.NoError(t, err)
	svc := app.NewServices(cfg, d, nil, logger)

	c, err := svc.Companies.Add(context.Background(), service.AddCompanyInput{
		Name:   "Newco",
		Domain: "newco.com",
		Status: domain.CompanyWaitlist,
	}, "")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, d.Store.Users().CreateUser(context.Background(), domain.User{
		ID:            idx.New().String(),
		Email:         "alex@newco.com",
		PasswordHash:  "unused",
		FirstName:     "Alex",
		City:          "Pune",
		CompanyID:     &c.ID,
		Status:        domain.UserWaitlist,
		EmailVerified: true,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	d.Close(logger)

	out, err := run(t, dir, "approve-company", "NewCo.com", "--approver", "ops@credmarket.test")
	require.NoError(t, err)
	require.Contains(t, out, "Approved company: Newco (newco.com)")
	require.Contains(t, out, "Updated 1 users to approved status")
	require.Contains(t, out, "Sent 1/1 approval emails")

	out, err = run(t, dir, "approve-company", "newco.com")
	require.NoError(t, err)
	require.Contains(t, out, `Company "Newco" is already approved`)

	out, err = run(t, dir, "waitlist-company", "newco.com")
	require.NoError(t, err)
	require.Contains(t, out, "approved -> waitlist")

	out, err = run(t, dir, "reject-company", "newco.com")
	require.NoError(t, err)
	require.Contains(t, out, "waitlist -> rejected")

	_, err = run(t, dir, "waitlist-company", "newco.com")
	require.ErrorContains(t, err, "cannot move from rejected to waitlist")
}
