package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/console"
	"github.com/dhcgn/msg-ledger/mbox"
	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/runner"
)

func (a *app) exportCommand() *cobra.Command {
	var output, collection string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active or deleted messages to an mbox file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false, func(r *runner.Runner, out *console.Console) error {
				var messages []model.Message
				switch collection {
				case "active":
					messages = r.Store().Active()
				case "deleted":
					messages = r.Store().ListDeleted()
				default:
					return fmt.Errorf("invalid --collection: %s", collection)
				}

				if err := mbox.Export(output, messages); err != nil {
					return err
				}
				r.Logger().Info("exported", "collection", collection, "path", output, "count", len(messages))
				out.Success("Exported %d messages to %s", len(messages), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "messages.mbox", "Path of the mbox file to write")
	cmd.Flags().StringVar(&collection, "collection", "active", "Collection to export: active or deleted")
	return cmd
}
