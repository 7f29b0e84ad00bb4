package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/console"
	"github.com/dhcgn/msg-ledger/identity"
	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/runner"
)

func (a *app) sendCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a message from --as to --to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := identity.ValidatePhone(to); err != nil {
				return fmt.Errorf("invalid recipient phone number: %w", err)
			}
			body := strings.Join(args, " ")

			return a.run(cmd, true, func(r *runner.Runner, out *console.Console) error {
				msg, err := r.Store().Send(r.Config().As, to, body)
				var vErr *model.ValidationError
				switch {
				case errors.Is(err, model.ErrBodyTooLong):
					out.Error("Message too long.")
					return err
				case errors.As(err, &vErr):
					return err
				case err != nil:
					out.Error("Error saving messages: %v", err)
					return err
				}
				out.Success("Message sent! ID: %s", msg.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient phone number (+27XXXXXXXXX)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show all messages sent or received by --as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, true, func(r *runner.Runner, out *console.Console) error {
				messages := r.Store().ListFor(r.Config().As)
				if len(messages) == 0 {
					out.Info("No messages.")
					return nil
				}
				out.Section("All messages sent or received")
				printMessages(out, messages, table)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "Render messages as a table")
	return cmd
}

func (a *app) deletedCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "deleted",
		Short: "Show deleted messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false, func(r *runner.Runner, out *console.Console) error {
				messages := r.Store().ListDeleted()
				if len(messages) == 0 {
					out.Info("No deleted messages.")
					return nil
				}
				out.Section("Deleted Messages")
				printMessages(out, messages, table)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "Render messages as a table")
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Move a message to the deleted set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false, func(r *runner.Runner, out *console.Console) error {
				return deleteByID(out, r.Store().DeleteByID, args[0])
			})
		},
	}
}

func (a *app) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Move every active message to the deleted set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false, func(r *runner.Runner, out *console.Console) error {
				n, err := r.Store().ClearAll()
				if err != nil {
					out.Error("Error saving messages: %v", err)
					return err
				}
				out.Success("All messages deleted. (%d moved)", n)
				return nil
			})
		},
	}
}

// deleteByID is shared by "delete" and "report delete" so both go through the
// store's single deletion path.
func deleteByID(out *console.Console, del func(string) (bool, error), id string) error {
	found, err := del(id)
	if err != nil {
		out.Error("Error saving messages: %v", err)
		return err
	}
	if !found {
		out.Warning("Message ID not found.")
		return nil
	}
	out.Success("Message deleted.")
	return nil
}

func printMessages(out *console.Console, messages []model.Message, table bool) {
	if table {
		out.MessageTable(messages)
		return
	}
	out.Messages(messages)
}
