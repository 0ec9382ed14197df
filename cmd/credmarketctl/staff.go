package main

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/spf13/cobra"
)

func newCreateStaffCmd(e *env) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-staff",
		Short: "Create an operator account",
		Long: "Create an approved, verified staff account with access to the admin API.\n" +
			"A random password is generated and printed when --password is omitted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := e.open(ctx); err != nil {
				return err
			}
			defer e.close()

			generated := password == ""
			if generated {
				p, err := cryptox.GeneratePassword()
				if err != nil {
					return err
				}
				password = p
			}

			u, err := e.services.Users.CreateStaff(ctx, email, password)
			if errors.Is(err, service.ErrDuplicateEmail) {
				return fmt.Errorf("an account with email %q already exists", email)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created staff account %s (%s)\n", u.Email, u.ID)
			if generated {
				fmt.Fprintf(out, "Password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "staff email address")
	cmd.Flags().StringVar(&password, "password", "", "initial password (generated when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
