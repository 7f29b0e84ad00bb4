// Package mbox writes message collections to mbox archives and reads them back.
package mbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/emersion/go-message"

	"github.com/dhcgn/msg-ledger/model"
)

const (
	headerID        = "X-Ledger-Id"
	headerTimestamp = "X-Ledger-Timestamp"
)

var ErrMessageIDMissing = errors.New("mbox message missing " + headerID + " header")

// Export writes messages to a new mbox file at path, replacing any existing file.
func Export(path string, messages []model.Message) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mbox: %w", err)
	}

	if err := Write(file, messages, time.Now()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write encodes messages as mbox entries stamped with at.
func Write(w io.Writer, messages []model.Message, at time.Time) error {
	mw := mboxlib.NewWriter(w)
	for _, msg := range messages {
		if err := writeMessage(mw, msg, at); err != nil {
			return fmt.Errorf("message %s: %w", msg.ID, err)
		}
	}
	return mw.Close()
}

func writeMessage(mw *mboxlib.Writer, msg model.Message, at time.Time) error {
	entry, err := mw.CreateMessage(msg.Sender, at)
	if err != nil {
		return err
	}

	var h message.Header
	h.Set("From", msg.Sender)
	h.Set("To", msg.Recipient)
	h.Set("Message-Id", "<"+msg.ID+"@msg-ledger>")
	h.Set(headerID, msg.ID)
	h.Set(headerTimestamp, msg.CreatedAt)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	body, err := message.CreateWriter(entry, h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(body, msg.Body); err != nil {
		body.Close()
		return err
	}
	return body.Close()
}

// Read opens an mbox file written by Export and calls callback for each
// message in order. Trailing line breaks of bodies are not preserved.
func Read(path string, callback func(model.Message) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	return Decode(file, callback)
}

// Decode is Read over an arbitrary reader.
func Decode(r io.Reader, callback func(model.Message) error) error {
	reader := mboxlib.NewReader(r)
	for idx := 0; ; idx++ {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("message %d: %w", idx, err)
		}

		msg, err := parseEntry(msgReader)
		if err != nil {
			return fmt.Errorf("message %d parse: %w", idx, err)
		}

		if err := callback(msg); err != nil {
			return err
		}
	}
}

func parseEntry(r io.Reader) (model.Message, error) {
	entity, err := message.Read(r)
	if err != nil {
		return model.Message{}, err
	}

	id := strings.TrimSpace(entity.Header.Get(headerID))
	if id == "" {
		return model.Message{}, ErrMessageIDMissing
	}

	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return model.Message{}, fmt.Errorf("read body: %w", err)
	}

	return model.Message{
		ID:        id,
		Sender:    entity.Header.Get("From"),
		Recipient: entity.Header.Get("To"),
		Body:      strings.TrimRight(string(body), "\r\n"),
		CreatedAt: entity.Header.Get(headerTimestamp),
	}, nil
}

// Count returns the number of entries in an mbox file.
func Count(path string) (int, error) {
	count := 0
	err := Read(path, func(model.Message) error {
		count++
		return nil
	})
	return count, err
}
