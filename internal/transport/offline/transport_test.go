package offline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dfxid/internal/domain"
	"dfxid/internal/transport/offline"
)

func template() domain.SignedMessage {
	return domain.SignedMessage{
		Version:       1,
		Network:       "local",
		Sender:        "2vxsx-fae",
		CanisterID:    "ryjl3-tyaaa-aaaaa-aaaba-cai",
		MethodName:    "greet",
		Arg:           "4449444c0000",
		IngressExpiry: 1_700_000_300_000_000_000,
		Creation:      1_700_000_000_000_000_000,
	}
}

func readMessage(t *testing.T, path string) map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestRead_WritesQueryAndAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.json")
	tr := offline.New(path, template())

	body, err := tr.Read(context.Background(), []byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Equal(t, "Query message generated at ["+path+"]", err.Error())

	out, ok := offline.Written(err)
	require.True(t, ok)
	assert.Equal(t, offline.StatusWritten, out.Status)
	assert.Equal(t, domain.CallQuery, out.CallType)
	assert.Equal(t, path, out.Path)
	assert.Equal(t, offline.StateAbortedBySentinel, tr.State())

	m := readMessage(t, path)
	assert.Equal(t, "query", m["call_type"])
	assert.Equal(t, "deadbeef", m["content"])
	assert.Equal(t, "greet", m["method_name"])
	assert.NotContains(t, m, "request_id")
}

func TestSubmit_WritesUpdateWithRequestID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.json")
	tr := offline.New(path, template())

	var id domain.RequestID
	id[0], id[31] = 0x01, 0xff
	err := tr.Submit(context.Background(), []byte{0x01, 0x02}, id)
	require.Error(t, err)
	assert.Equal(t, "Update message generated at ["+path+"]", err.Error())

	out, ok := offline.Written(err)
	require.True(t, ok)
	assert.Equal(t, domain.CallUpdate, out.CallType)

	m := readMessage(t, path)
	assert.Equal(t, "update", m["call_type"])
	assert.Equal(t, id.String(), m["request_id"])
	assert.Equal(t, "0102", m["content"])
}

func TestSubmit_ContentIndependentOfPath(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	var id domain.RequestID
	id[5] = 0x42

	ctx := context.Background()
	_ = offline.New(a, template()).Submit(ctx, []byte("envelope"), id)
	_ = offline.New(b, template()).Submit(ctx, []byte("envelope"), id)

	ra, err := os.ReadFile(a)
	require.NoError(t, err)
	rb, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func TestRead_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))

	_, err := offline.New(path, template()).Read(context.Background(), []byte{0xaa})
	_, ok := offline.Written(err)
	require.True(t, ok)
	assert.Equal(t, "aa", readMessage(t, path)["content"])
}

func TestUnsupportedCalls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "message.json")
	tr := offline.New(path, template())
	ctx := context.Background()

	_, err := tr.ReadState(ctx, "aaaaa-aa", []byte{1})
	assert.ErrorIs(t, err, offline.ErrNotSupported)
	assert.ErrorIs(t, tr.Call(ctx, "aaaaa-aa", []byte{1}), offline.ErrNotSupported)
	_, err = tr.Status(ctx)
	assert.ErrorIs(t, err, offline.ErrNotSupported)

	_, ok := offline.Written(err)
	assert.False(t, ok)
	assert.Equal(t, offline.StateIdle, tr.State())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "message.json")
	tr := offline.New(path, template())

	out := tr.WriteQuery(context.Background(), []byte{1})
	assert.Equal(t, offline.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, os.ErrNotExist)
	assert.Equal(t, offline.StateFailed, tr.State())

	_, err := tr.Read(context.Background(), []byte{1})
	require.Error(t, err)
	_, ok := offline.Written(err)
	assert.False(t, ok, "a failed write is not the sentinel")
}

func TestCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.json")
	tr := offline.New(path, template())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := tr.WriteUpdate(ctx, []byte{1}, domain.RequestID{})
	assert.Equal(t, offline.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, context.Canceled)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
