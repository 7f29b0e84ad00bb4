package console

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/report"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

var msg = model.Message{
	ID:        "6f1c",
	Sender:    "+27111111111",
	Recipient: "+27222222222",
	Body:      "hello there",
	CreatedAt: "Mon Jun 16 09:30:00 UTC 2025",
}

func TestMessage(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Message(msg)

	want := "ID: 6f1c\n" +
		"From: +27111111111\n" +
		"To: +27222222222\n" +
		"Message: hello there\n" +
		"Time: Mon Jun 16 09:30:00 UTC 2025\n" +
		separator + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPairs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Pairs([]report.Pair{{Sender: "a", Recipient: "b"}})
	assert.Equal(t, "From: a, To: b\n", buf.String())
}

func TestMessageTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).MessageTable([]model.Message{msg})

	out := buf.String()
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "+27222222222")
}

func TestCounts(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Counts("Recipient", []report.Count{{Key: "+27222222222", Value: 3}})

	assert.Contains(t, buf.String(), "+27222222222")
	assert.Contains(t, buf.String(), "3")
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.Success("Message sent!")
	c.Error("Message ID not found.")
	c.Summary(report.Summary{Active: 2, Deleted: 1})

	out := buf.String()
	assert.Contains(t, out, "Message sent!")
	assert.Contains(t, out, "Message ID not found.")
	assert.Contains(t, out, "Active messages: 2")
	assert.Contains(t, out, "Deleted messages: 1")
}
