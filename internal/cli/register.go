package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"popquiz-client/internal/api"
)

func newRegisterCmd(opts *options) *cobra.Command {
	reg := api.Registration{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a popQuiz account without starting the client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRegistration(reg); err != nil {
				return err
			}
			rt := &runtime{}
			if err := rt.setup(opts, os.Stderr); err != nil {
				return err
			}
			defer rt.close()

			if err := rt.client.RegisterUser(cmd.Context(), reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registration successful! Welcome, %s.\n", reg.Username)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&reg.Username, "username", "", "account username")
	fs.StringVar(&reg.Email, "email", "", "account email")
	fs.StringVar(&reg.Password, "password", "", "account password (min 6 characters)")
	fs.StringVar(&reg.Role, "role", "USER", "account role: USER or HOST")
	return cmd
}

func validateRegistration(reg api.Registration) error {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return errors.New("please fill in all fields")
	}
	if len(reg.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	switch strings.ToUpper(reg.Role) {
	case "USER", "HOST":
		return nil
	default:
		return fmt.Errorf("unknown role %q: must be USER or HOST", reg.Role)
	}
}
