package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/state"
	"github.com/dhcgn/msg-ledger/store"
)

const (
	alice = "+27111111111"
	bob   = "+27222222222"
	carol = "+27333333333"
)

func newEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s := store.New(state.NewMemoryBackend(), nil)
	require.NoError(t, s.Initialize())
	return New(s), s
}

func send(t *testing.T, s *store.Store, sender, recipient, body string) model.Message {
	t.Helper()
	msg, err := s.Send(sender, recipient, body)
	require.NoError(t, err)
	return msg
}

func TestLongestMessage_FirstMaximumWins(t *testing.T) {
	e, s := newEngine(t)
	var sent []model.Message
	for _, n := range []int{5, 9, 9, 3} {
		sent = append(sent, send(t, s, alice, bob, strings.Repeat("x", n)))
	}

	got, ok := e.LongestMessage()
	require.True(t, ok)
	assert.Equal(t, sent[1].ID, got.ID)
}

func TestLongestMessage_Empty(t *testing.T) {
	e, _ := newEngine(t)
	_, ok := e.LongestMessage()
	assert.False(t, ok)
}

func TestAllSenderRecipientPairs(t *testing.T) {
	e, s := newEngine(t)
	send(t, s, alice, bob, "hi")
	send(t, s, bob, alice, "hello there")

	assert.Equal(t, []Pair{
		{Sender: alice, Recipient: bob},
		{Sender: bob, Recipient: alice},
	}, e.AllSenderRecipientPairs())
}

func TestFindByID(t *testing.T) {
	e, s := newEngine(t)
	want := send(t, s, alice, bob, "find me")

	got, ok := e.FindByID(want.ID)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = e.FindByID("missing")
	assert.False(t, ok)
}

func TestFindByID_IgnoresDeleted(t *testing.T) {
	e, s := newEngine(t)
	msg := send(t, s, alice, bob, "bye")

	ok, err := e.DeleteByID(msg.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok = e.FindByID(msg.ID)
	assert.False(t, ok)
	assert.Equal(t, []model.Message{msg}, s.ListDeleted())
}

func TestFindByRecipient(t *testing.T) {
	e, s := newEngine(t)
	first := send(t, s, alice, bob, "1")
	send(t, s, alice, carol, "2")
	third := send(t, s, carol, bob, "3")

	assert.Equal(t, []model.Message{first, third}, e.FindByRecipient(bob))
	assert.Empty(t, e.FindByRecipient("+27000000000"))
}

func TestFullDump(t *testing.T) {
	e, s := newEngine(t)
	a := send(t, s, alice, bob, "a")
	b := send(t, s, bob, carol, "b")

	assert.Equal(t, []model.Message{a, b}, e.FullDump())
}

type bodyContains string

func (b bodyContains) Allows(msg model.Message) bool {
	return strings.Contains(msg.Body, string(b))
}

func TestSearch(t *testing.T) {
	e, s := newEngine(t)
	send(t, s, alice, bob, "lunch today?")
	hit := send(t, s, bob, alice, "meeting moved")

	assert.Equal(t, []model.Message{hit}, e.Search(bodyContains("meeting")))
}

func TestSummaryAndTopRecipients(t *testing.T) {
	e, s := newEngine(t)
	send(t, s, alice, bob, "1")
	send(t, s, alice, bob, "2")
	send(t, s, bob, carol, "3")
	gone := send(t, s, carol, alice, "4")
	_, err := s.DeleteByID(gone.ID)
	require.NoError(t, err)

	summary := e.Summary()
	assert.Equal(t, 3, summary.Active)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, map[string]int{alice: 2, bob: 1}, summary.BySender)
	assert.Contains(t, summary.LogAttrs(), "senders")

	assert.Equal(t, []Count{{Key: bob, Value: 2}, {Key: carol, Value: 1}}, e.TopRecipients(5))
	assert.Equal(t, []Count{{Key: bob, Value: 2}}, e.TopRecipients(1))
}

func TestTop_TieBreakByKey(t *testing.T) {
	got := Top(map[string]int{"b": 1, "a": 1, "c": 3}, -1)
	assert.Equal(t, []Count{{"c", 3}, {"a", 1}, {"b", 1}}, got)
}
