package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/msg-ledger/config"
	"github.com/dhcgn/msg-ledger/state"
)

func TestNew_EachBackendPersists(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendBadger, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Config{DataDir: t.TempDir(), Backend: backend}

			r, err := New(cfg, nil)
			require.NoError(t, err)
			require.NoError(t, r.LoadErr())
			msg, err := r.Store().Send("+27111111111", "+27222222222", "hi")
			require.NoError(t, err)
			require.NoError(t, r.Close())

			r, err = New(cfg, nil)
			require.NoError(t, err)
			defer r.Close()

			got, ok := r.Reports().FindByID(msg.ID)
			require.True(t, ok)
			assert.Equal(t, msg, got)
		})
	}
}

func TestNew_CorruptFileIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.json"), []byte("{"), 0o600))

	r, err := New(config.Config{DataDir: dir, Backend: config.BackendJSON}, nil)
	require.NoError(t, err)
	defer r.Close()

	assert.ErrorIs(t, r.LoadErr(), state.ErrCorrupt)
	assert.Empty(t, r.Store().Active())
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, err := OpenBackend(config.Config{Backend: "tape"})
	assert.Error(t, err)
}
