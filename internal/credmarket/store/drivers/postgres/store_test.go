package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/postgres"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway postgres and returns a migrated store.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in -short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "credmarket",
				"POSTGRES_PASSWORD": "credmarket",
				"POSTGRES_DB":       "credmarket",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://credmarket:credmarket@%s:%s/credmarket?sslmode=disable", host, port.Port())
	s, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	// A second run is a no-op.
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	c := domain.Company{
		ID: idx.New().String(), Name: "Newco", Domain: "newco.com",
		Status: domain.CompanyWaitlist, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Companies().CreateCompany(ctx, c))

	t.Run("duplicate domain keeps the tx usable", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			dup := c
			dup.ID = idx.New().String()
			require.ErrorIs(t, tx.Companies().CreateCompany(ctx, dup), store.ErrAlreadyExists)

			got, err := tx.Companies().GetCompanyByDomain(ctx, "newco.com")
			require.NoError(t, err)
			require.Equal(t, c.ID, got.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		u := domain.User{
			ID: idx.New().String(), Email: "a@newco.com", PasswordHash: "x",
			CompanyID: &c.ID, Status: domain.UserWaitlist, Active: true,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, s.Users().CreateUser(ctx, u))
		u.ID = idx.New().String()
		require.ErrorIs(t, s.Users().CreateUser(ctx, u), store.ErrAlreadyExists)
	})

	t.Run("propagation returns flipped users", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "a@newco.com")
		require.NoError(t, err)
		require.NoError(t, s.Users().MarkVerifiedAndAdvance(ctx, u.ID, now))

		var approved []domain.User
		err = s.WithTx(ctx, func(tx store.Tx) error {
			ok, err := tx.Companies().TransitionCompanyStatus(ctx, c.ID,
				domain.CompanyWaitlist, domain.CompanyApproved, nil, &now, now)
			require.NoError(t, err)
			require.True(t, ok)

			approved, err = tx.Users().ApproveVerifiedWaitlisted(ctx, c.ID, now)
			return err
		})
		require.NoError(t, err)
		require.Len(t, approved, 1)
		require.Equal(t, domain.UserApproved, approved[0].Status)
	})

	t.Run("otp consumed once under concurrency", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "a@newco.com")
		require.NoError(t, err)

		o := domain.OTP{ID: idx.New().String(), UserID: u.ID, Code: "123456", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
		require.NoError(t, s.OTPs().CreateOTP(ctx, o))

		var wg sync.WaitGroup
		results := make(chan bool, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.OTPs().MarkOTPUsed(ctx, o.ID)
				if err == nil {
					results <- ok
				}
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for ok := range results {
			if ok {
				wins++
			}
		}
		require.Equal(t, 1, wins)
	})

	t.Run("delete company nulls users", func(t *testing.T) {
		require.NoError(t, s.Companies().DeleteCompany(ctx, c.ID))
		u, err := s.Users().GetUserByEmail(ctx, "a@newco.com")
		require.NoError(t, err)
		require.Nil(t, u.CompanyID)
	})
}
