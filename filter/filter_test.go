package filter

import (
	"testing"

	"github.com/dhcgn/msg-ledger/model"
)

func msg(sender, recipient, body string) model.Message {
	return model.Message{ID: "id", Sender: sender, Recipient: recipient, Body: body}
}

func TestFilter_Allows_IncludeMode(t *testing.T) {
	f, err := New(Options{IncludeParticipant: []string{`\+27111`}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !f.Allows(msg("+27111111111", "+27222222222", "hi")) {
		t.Error("Expected message to be allowed (sender matches)")
	}
	if !f.Allows(msg("+27222222222", "+27111111111", "hi")) {
		t.Error("Expected message to be allowed (recipient matches)")
	}
	if f.Allows(msg("+27222222222", "+27333333333", "hi")) {
		t.Error("Expected message to be filtered out (no participant matches)")
	}
}

func TestFilter_Allows_ExcludeMode(t *testing.T) {
	f, err := New(Options{ExcludeBody: []string{"(?i)spam"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !f.Allows(msg("+27111111111", "+27222222222", "Normal message")) {
		t.Error("Expected message to be allowed (no spam)")
	}
	if f.Allows(msg("+27111111111", "+27222222222", "This is SPAM")) {
		t.Error("Expected message to be filtered out (contains spam)")
	}
}

func TestFilter_MutuallyExclusive(t *testing.T) {
	_, err := New(Options{
		IncludeBody:        []string{"test"},
		ExcludeParticipant: []string{"spam"},
	})
	if err == nil {
		t.Error("Expected error when both include and exclude are specified")
	}
}

func TestFilter_NoFilters(t *testing.T) {
	f, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !f.Allows(msg("+27111111111", "+27222222222", "Any body content")) {
		t.Error("Expected message to be allowed when no filters are active")
	}
}

func TestFilter_BlankPatternsIgnored(t *testing.T) {
	f, err := New(Options{IncludeBody: []string{"  ", ""}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !f.Allows(msg("+27111111111", "+27222222222", "anything")) {
		t.Error("Expected blank patterns to leave the filter inactive")
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	if _, err := New(Options{IncludeBody: []string{"("}}); err == nil {
		t.Error("Expected error for invalid regex")
	}
}
