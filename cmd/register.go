package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/console"
	"github.com/dhcgn/msg-ledger/identity"
)

func registerCommand() *cobra.Command {
	var reg identity.Registration

	check := &cobra.Command{
		Use:   "check",
		Short: "Check username, password and phone number against the registration rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := console.New(cmd.OutOrStdout())
			if err := identity.ValidateRegistration(reg); err != nil {
				out.Error("%v", err)
				return err
			}
			out.Success("Credentials successfully captured.")
			return nil
		},
	}
	flags := check.Flags()
	flags.StringVar(&reg.Name, "name", "", "First name (optional)")
	flags.StringVar(&reg.Surname, "surname", "", "Surname (optional)")
	flags.StringVar(&reg.Username, "username", "", "Username: contains an underscore, at most 5 characters")
	flags.StringVar(&reg.Password, "password", "", "Password: 8+ characters with a capital letter, a number and a special character")
	flags.StringVar(&reg.Phone, "phone", "", "Phone number (+27 followed by 9 digits)")

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registration helpers",
	}
	cmd.AddCommand(check)
	return cmd
}
