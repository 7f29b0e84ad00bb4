// Package report answers read-only questions about the active messages.
package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/dhcgn/msg-ledger/model"
)

// Source is the part of the store reports read from. DeleteByID is the single
// deletion path; the engine only forwards to it.
type Source interface {
	Active() []model.Message
	ListDeleted() []model.Message
	DeleteByID(id string) (bool, error)
}

// Matcher selects messages for Search.
type Matcher interface {
	Allows(msg model.Message) bool
}

type Pair struct {
	Sender    string
	Recipient string
}

// Count is one row of a frequency table.
type Count struct {
	Key   string
	Value int
}

type Summary struct {
	Active      int
	Deleted     int
	BySender    map[string]int
	ByRecipient map[string]int
}

func (s Summary) LogAttrs() []any {
	return []any{
		"active", s.Active,
		"deleted", s.Deleted,
		"senders", len(s.BySender),
		"recipients", len(s.ByRecipient),
	}
}

type Engine struct {
	source Source
}

func New(source Source) *Engine {
	return &Engine{source: source}
}

func (e *Engine) AllSenderRecipientPairs() []Pair {
	return lo.Map(e.source.Active(), func(m model.Message, _ int) Pair {
		return Pair{Sender: m.Sender, Recipient: m.Recipient}
	})
}

// LongestMessage returns the active message with the longest body. Ties go to
// the earliest message.
func (e *Engine) LongestMessage() (model.Message, bool) {
	active := e.source.Active()
	if len(active) == 0 {
		return model.Message{}, false
	}
	return lo.MaxBy(active, func(a, b model.Message) bool {
		return a.Len() > b.Len()
	}), true
}

func (e *Engine) FindByID(id string) (model.Message, bool) {
	return lo.Find(e.source.Active(), func(m model.Message) bool {
		return m.ID == id
	})
}

func (e *Engine) FindByRecipient(recipient string) []model.Message {
	return lo.Filter(e.source.Active(), func(m model.Message, _ int) bool {
		return m.Recipient == recipient
	})
}

func (e *Engine) FullDump() []model.Message {
	return e.source.Active()
}

// DeleteByID forwards to the store.
func (e *Engine) DeleteByID(id string) (bool, error) {
	return e.source.DeleteByID(id)
}

// Search returns the active messages the matcher allows.
func (e *Engine) Search(m Matcher) []model.Message {
	return lo.Filter(e.source.Active(), func(msg model.Message, _ int) bool {
		return m.Allows(msg)
	})
}

func (e *Engine) Summary() Summary {
	active := e.source.Active()
	return Summary{
		Active:  len(active),
		Deleted: len(e.source.ListDeleted()),
		BySender: lo.CountValuesBy(active, func(m model.Message) string {
			return m.Sender
		}),
		ByRecipient: lo.CountValuesBy(active, func(m model.Message) string {
			return m.Recipient
		}),
	}
}

// TopRecipients returns the limit most messaged recipients, most frequent first.
func (e *Engine) TopRecipients(limit int) []Count {
	return Top(e.Summary().ByRecipient, limit)
}

// Top sorts a frequency map by count, highest first, breaking ties by key.
func Top(m map[string]int, limit int) []Count {
	pairs := make([]Count, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Count{Key: k, Value: v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Value != pairs[j].Value {
			return pairs[i].Value > pairs[j].Value
		}
		return pairs[i].Key < pairs[j].Key
	})

	if limit >= 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}
	return pairs
}
