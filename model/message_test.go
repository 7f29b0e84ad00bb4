package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Fields(t *testing.T) {
	fixed := time.Date(2025, time.June, 16, 9, 30, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = restore })

	msg, err := NewMessage("+27123456789", "+27987654321", "Hello!")
	require.NoError(t, err)

	assert.Equal(t, "+27123456789", msg.Sender)
	assert.Equal(t, "+27987654321", msg.Recipient)
	assert.Equal(t, "Hello!", msg.Body)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Mon Jun 16 09:30:00 UTC 2025", msg.CreatedAt)
}

func TestNewMessage_BodyLengthBoundary(t *testing.T) {
	_, err := NewMessage("+27111111111", "+27222222222", strings.Repeat("a", MaxBodyLength))
	require.NoError(t, err)

	_, err = NewMessage("+27111111111", "+27222222222", strings.Repeat("a", MaxBodyLength+1))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "message", vErr.Field)
	assert.ErrorIs(t, err, ErrBodyTooLong)
}

func TestNewMessage_CountsCharactersNotBytes(t *testing.T) {
	body := strings.Repeat("é", MaxBodyLength)
	msg, err := NewMessage("+27111111111", "+27222222222", body)
	require.NoError(t, err)
	assert.Equal(t, MaxBodyLength, msg.Len())
}

func TestNewMessage_RequiresParticipants(t *testing.T) {
	_, err := NewMessage("", "+27222222222", "hi")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "sender", vErr.Field)
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		msg, err := NewMessage("+27111111111", "+27222222222", "x")
		require.NoError(t, err)
		_, dup := seen[msg.ID]
		require.False(t, dup, "duplicate id %s", msg.ID)
		seen[msg.ID] = struct{}{}
	}
}

func TestParseMessages_RoundTrip(t *testing.T) {
	a, err := NewMessage("+27111111111", "+27222222222", "hi")
	require.NoError(t, err)
	b, err := NewMessage("+27222222222", "+27111111111", "hello there")
	require.NoError(t, err)

	data, err := EncodeMessages([]Message{a, b})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message": "hi"`)
	assert.Contains(t, string(data), `"timestamp"`)

	got, err := ParseMessages(data)
	require.NoError(t, err)
	assert.Equal(t, []Message{a, b}, got)
}

func TestParseMessages_EmptyArray(t *testing.T) {
	got, err := ParseMessages([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, got)

	data, err := EncodeMessages(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestParseMessages_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "   "},
		{"not json", "{{{"},
		{"object instead of array", `{"id":"1"}`},
		{"number field", `[{"id":1,"sender":"a","recipient":"b","message":"m","timestamp":"t"}]`},
		{"unknown key", `[{"id":"1","sender":"a","recipient":"b","message":"m","timestamp":"t","x":"y"}]`},
		{"missing id", `[{"sender":"a","recipient":"b","message":"m","timestamp":"t"}]`},
		{"trailing data", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessages([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseMessages_KeepsLongStoredBodies(t *testing.T) {
	body := strings.Repeat("b", MaxBodyLength+10)
	data := `[{"id":"1","sender":"a","recipient":"b","message":"` + body + `","timestamp":"t"}]`
	got, err := ParseMessages([]byte(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, body, got[0].Body)
}
