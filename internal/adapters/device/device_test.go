package device

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probemon/internal/domain"
)

func TestOpen_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, []byte("x\r\n65.0\r\n"), 0o644))

	src, err := Open(path)
	require.NoError(t, err)

	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "x\r\n65.0\r\n", string(data))
	assert.Equal(t, uint64(9), src.BytesRead())
	assert.Equal(t, path, src.Name())

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.True(t, src.Closed())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, domain.ErrByteSource)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestClose_UnblocksPipeRead(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	src := New("pipe", r)
	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		_, err := src.Read(buf)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, src.Close())

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("close did not unblock read")
	}
}
