package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/console"
	"github.com/dhcgn/msg-ledger/filter"
	"github.com/dhcgn/msg-ledger/runner"
)

func (a *app) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read-only reports over the active messages",
	}

	reportCmd := func(use, short string, args cobra.PositionalArgs, fn func(r *runner.Runner, out *console.Console, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(c *cobra.Command, argv []string) error {
				return a.run(c, false, func(r *runner.Runner, out *console.Console) error {
					return fn(r, out, argv)
				})
			},
		}
	}

	var topN int
	top := reportCmd("top", "Most messaged recipients", cobra.NoArgs, func(r *runner.Runner, out *console.Console, _ []string) error {
		out.Counts("Recipient", r.Reports().TopRecipients(topN))
		return nil
	})
	top.Flags().IntVarP(&topN, "top", "t", 10, "Number of recipients to show")

	cmd.AddCommand(
		reportCmd("pairs", "Display sender and recipient of all messages", cobra.NoArgs, func(r *runner.Runner, out *console.Console, _ []string) error {
			out.Pairs(r.Reports().AllSenderRecipientPairs())
			return nil
		}),
		reportCmd("longest", "Display the longest message", cobra.NoArgs, func(r *runner.Runner, out *console.Console, _ []string) error {
			msg, ok := r.Reports().LongestMessage()
			if !ok {
				out.Info("No messages.")
				return nil
			}
			out.Info("Longest message: %s", msg.Body)
			return nil
		}),
		reportCmd("find [id]", "Search by message ID", cobra.ExactArgs(1), func(r *runner.Runner, out *console.Console, args []string) error {
			msg, ok := r.Reports().FindByID(args[0])
			if !ok {
				out.Warning("ID not found.")
				return nil
			}
			out.Message(msg)
			return nil
		}),
		reportCmd("recipient [phone]", "Search by recipient", cobra.ExactArgs(1), func(r *runner.Runner, out *console.Console, args []string) error {
			messages := r.Reports().FindByRecipient(args[0])
			if len(messages) == 0 {
				out.Warning("No messages for recipient %s", args[0])
				return nil
			}
			out.Messages(messages)
			return nil
		}),
		reportCmd("delete [id]", "Delete message by ID", cobra.ExactArgs(1), func(r *runner.Runner, out *console.Console, args []string) error {
			return deleteByID(out, r.Reports().DeleteByID, args[0])
		}),
		reportCmd("dump", "Full message report", cobra.NoArgs, func(r *runner.Runner, out *console.Console, _ []string) error {
			out.Messages(r.Reports().FullDump())
			return nil
		}),
		reportCmd("summary", "Counts of active and deleted messages", cobra.NoArgs, func(r *runner.Runner, out *console.Console, _ []string) error {
			summary := r.Reports().Summary()
			r.Logger().Info("summary", summary.LogAttrs()...)
			out.Summary(summary)
			return nil
		}),
		top,
	)
	return cmd
}

func (a *app) searchCommand() *cobra.Command {
	var opts filter.Options
	var table bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find active messages by regular expression",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.New(opts)
			if err != nil {
				return err
			}
			return a.run(cmd, false, func(r *runner.Runner, out *console.Console) error {
				messages := r.Reports().Search(f)
				if len(messages) == 0 {
					out.Info("No matching messages.")
					return nil
				}
				printMessages(out, messages, table)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.IncludeParticipant, "include-participant", nil, "Regex allow-list applied to sender and recipient (mutually exclusive with exclude flags)")
	flags.StringArrayVar(&opts.IncludeBody, "include-body", nil, "Regex allow-list applied to message text (mutually exclusive with exclude flags)")
	flags.StringArrayVar(&opts.ExcludeParticipant, "exclude-participant", nil, "Regex block-list applied to sender and recipient (mutually exclusive with include flags)")
	flags.StringArrayVar(&opts.ExcludeBody, "exclude-body", nil, "Regex block-list applied to message text (mutually exclusive with include flags)")
	flags.BoolVar(&table, "table", false, "Render messages as a table")
	return cmd
}
