package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxBodyLength is the longest body, in characters, a new message may carry.
const MaxBodyLength = 250

// TimestampLayout renders CreatedAt. The value is stored as text and never parsed back.
const TimestampLayout = "Mon Jan 02 15:04:05 MST 2006"

var (
	ErrEmptyDocument = errors.New("document is empty")

	validate = validator.New()

	// overridable in tests
	newID = uuid.NewString
	now   = time.Now
)

// Message is a single text message between two phone-number identities.
type Message struct {
	ID        string `json:"id" validate:"required"`
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Body      string `json:"message" validate:"max=250"`
	CreatedAt string `json:"timestamp"`
}

// NewMessage builds a message with a fresh random id and the current time.
func NewMessage(sender, recipient, body string) (Message, error) {
	msg := Message{
		ID:        newID(),
		Sender:    sender,
		Recipient: recipient,
		Body:      body,
		CreatedAt: now().Format(TimestampLayout),
	}
	if err := validate.Struct(msg); err != nil {
		return Message{}, newValidationError(err)
	}
	return msg, nil
}

// Len returns the body length in characters.
func (m Message) Len() int {
	return len([]rune(m.Body))
}

// ParseMessages decodes a serialized collection. Unknown keys, non-string values
// and records without id, sender or recipient are rejected.
func ParseMessages(data []byte) ([]Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var messages []Message
	if err := dec.Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode messages: trailing data after array")
	}

	for i, msg := range messages {
		// stored bodies are not re-checked against MaxBodyLength
		if err := validate.StructExcept(msg, "Body"); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, newValidationError(err))
		}
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

// EncodeMessages renders a collection in its persisted form.
func EncodeMessages(messages []Message) ([]byte, error) {
	if messages == nil {
		messages = []Message{}
	}
	return json.MarshalIndent(messages, "", "  ")
}
