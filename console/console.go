// Package console renders messages and reports for the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"

	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/report"
)

const separator = "---------------------------"

// Console writes to a single output; status lines go through pterm, tables
// through tablewriter.
type Console struct {
	out io.Writer
}

func New(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) Success(format string, args ...any) {
	pterm.Success.WithWriter(c.out).Printfln(format, args...)
}

func (c *Console) Info(format string, args ...any) {
	pterm.Info.WithWriter(c.out).Printfln(format, args...)
}

func (c *Console) Warning(format string, args ...any) {
	pterm.Warning.WithWriter(c.out).Printfln(format, args...)
}

func (c *Console) Error(format string, args ...any) {
	pterm.Error.WithWriter(c.out).Printfln(format, args...)
}

func (c *Console) Section(title string) {
	pterm.DefaultSection.WithWriter(c.out).Println(title)
}

// Message prints every field of one message followed by a separator line.
func (c *Console) Message(msg model.Message) {
	fmt.Fprintf(c.out, "ID: %s\n", msg.ID)
	fmt.Fprintf(c.out, "From: %s\n", msg.Sender)
	fmt.Fprintf(c.out, "To: %s\n", msg.Recipient)
	fmt.Fprintf(c.out, "Message: %s\n", msg.Body)
	fmt.Fprintf(c.out, "Time: %s\n", msg.CreatedAt)
	fmt.Fprintln(c.out, separator)
}

func (c *Console) Messages(messages []model.Message) {
	for _, msg := range messages {
		c.Message(msg)
	}
}

// MessageTable prints one row per message.
func (c *Console) MessageTable(messages []model.Message) {
	rows := make([][]string, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, []string{m.ID, m.Sender, m.Recipient, m.Body, m.CreatedAt})
	}
	c.table([]string{"ID", "From", "To", "Message", "Time"}, rows)
}

func (c *Console) Pairs(pairs []report.Pair) {
	for _, p := range pairs {
		fmt.Fprintf(c.out, "From: %s, To: %s\n", p.Sender, p.Recipient)
	}
}

func (c *Console) Counts(title string, counts []report.Count) {
	rows := make([][]string, 0, len(counts))
	for i, cnt := range counts {
		rows = append(rows, []string{strconv.Itoa(i + 1), cnt.Key, strconv.Itoa(cnt.Value)})
	}
	c.table([]string{"#", title, "Messages"}, rows)
}

func (c *Console) Summary(s report.Summary) {
	c.Section("Summary Statistics")
	c.Info("Active messages: %d", s.Active)
	c.Info("Deleted messages: %d", s.Deleted)
	c.Info("Distinct senders: %d", len(s.BySender))
	c.Info("Distinct recipients: %d", len(s.ByRecipient))
}

func (c *Console) table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.AppendBulk(rows)
	table.Render()
}
