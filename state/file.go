package state

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhcgn/msg-ledger/model"
)

const fileExt = ".json"

// FileBackend stores each collection as a JSON array in its own file under dir.
//
// Save truncates and rewrites the file in place. A process interrupted
// mid-write can leave a truncated file behind, which the next Load reports
// as corrupt.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &FileBackend{dir: dir}, nil
}

// Path returns the file backing the named collection.
func (f *FileBackend) Path(name string) string {
	return filepath.Join(f.dir, name+fileExt)
}

func (f *FileBackend) Load(name string) ([]model.Message, error) {
	if name == "" {
		return nil, loadError(name, ErrEmptyResource)
	}

	data, err := os.ReadFile(f.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, loadError(name, err)
	}

	return decode(name, data)
}

func (f *FileBackend) Save(name string, messages []model.Message) error {
	if name == "" {
		return saveError(name, ErrEmptyResource)
	}

	data, err := model.EncodeMessages(messages)
	if err != nil {
		return saveError(name, fmt.Errorf("encode: %w", err))
	}

	file, err := os.OpenFile(f.Path(name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return saveError(name, err)
	}

	writer := bufio.NewWriter(file)
	var firstErr error
	if _, err := writer.Write(data); err != nil {
		firstErr = fmt.Errorf("write: %w", err)
	}
	if firstErr == nil {
		if err := writer.Flush(); err != nil {
			firstErr = fmt.Errorf("flush: %w", err)
		}
	}
	if firstErr == nil {
		if err := file.Sync(); err != nil {
			firstErr = fmt.Errorf("sync: %w", err)
		}
	}
	if err := file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close: %w", err)
	}
	if firstErr != nil {
		return saveError(name, firstErr)
	}

	return nil
}

func (f *FileBackend) Close() error {
	return nil
}
