package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhcgn/msg-ledger/model"
)

// Options captures the search configuration. Participant patterns run against
// "sender recipient", body patterns against the message text.
type Options struct {
	IncludeParticipant []string
	IncludeBody        []string
	ExcludeParticipant []string
	ExcludeBody        []string
}

// Filter holds compiled regex patterns for selecting messages.
type Filter struct {
	includeMode        bool
	excludeMode        bool
	includeParticipant []*regexp.Regexp
	includeBody        []*regexp.Regexp
	excludeParticipant []*regexp.Regexp
	excludeBody        []*regexp.Regexp
}

// New creates a new Filter from the provided options.
func New(opts Options) (*Filter, error) {
	includeParticipant, err := compilePatterns(opts.IncludeParticipant)
	if err != nil {
		return nil, fmt.Errorf("compile include-participant pattern: %w", err)
	}
	includeBody, err := compilePatterns(opts.IncludeBody)
	if err != nil {
		return nil, fmt.Errorf("compile include-body pattern: %w", err)
	}
	excludeParticipant, err := compilePatterns(opts.ExcludeParticipant)
	if err != nil {
		return nil, fmt.Errorf("compile exclude-participant pattern: %w", err)
	}
	excludeBody, err := compilePatterns(opts.ExcludeBody)
	if err != nil {
		return nil, fmt.Errorf("compile exclude-body pattern: %w", err)
	}

	includeActive := len(includeParticipant) > 0 || len(includeBody) > 0
	excludeActive := len(excludeParticipant) > 0 || len(excludeBody) > 0
	if includeActive && excludeActive {
		return nil, fmt.Errorf("include and exclude filters are mutually exclusive")
	}

	return &Filter{
		includeMode:        includeActive,
		excludeMode:        excludeActive,
		includeParticipant: includeParticipant,
		includeBody:        includeBody,
		excludeParticipant: excludeParticipant,
		excludeBody:        excludeBody,
	}, nil
}

// Allows returns true if the message passes the filter criteria.
func (f *Filter) Allows(msg model.Message) bool {
	participants := msg.Sender + " " + msg.Recipient

	if f.includeMode {
		return matchAny(f.includeParticipant, participants) || matchAny(f.includeBody, msg.Body)
	}

	if f.excludeMode {
		if matchAny(f.excludeParticipant, participants) || matchAny(f.excludeBody, msg.Body) {
			return false
		}
	}

	return true
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
