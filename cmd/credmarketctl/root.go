package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/app"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/spf13/cobra"
)

// env is what every subcommand runs against. It is built lazily so that
// --help works without a database.
type env struct {
	cfg      app.Config
	logger   *slog.Logger
	deps     *app.Deps
	services *app.Services
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "credmarketctl",
		Short:         "CredMarket operator tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       app.BuildVersion,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			e.cfg = app.LoadConfig()
			e.logger = app.NewLogger(e.cfg, "credmarketctl")
			cryptox.SetPepperPath(e.cfg.PepperFile)
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newApproveCompanyCmd(e),
		newRejectCompanyCmd(e),
		newWaitlistCompanyCmd(e),
		newCreateStaffCmd(e),
	)
	return root
}

// open connects the store, the event publisher and the email dispatcher.
// Callers defer close.
func (e *env) open(ctx context.Context) error {
	if e.deps != nil {
		return nil
	}
	d, err := app.OpenDeps(ctx, e.cfg, e.logger)
	if err != nil {
		return err
	}
	e.deps = d
	e.services = app.NewServices(e.cfg, d, nil, e.logger)
	return nil
}

// close drains queued email before the process exits.
func (e *env) close() {
	if e.deps != nil {
		e.deps.Close(e.logger)
		e.deps = nil
	}
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.OpenStore(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", e.cfg.DatabaseDriver)
			return nil
		},
	}
}
