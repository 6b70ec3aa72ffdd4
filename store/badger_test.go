package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerInMemoryRoundTrip(t *testing.T) {
	b, err := NewBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	testRoundTrip(t, b)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := NewBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "book:board", []byte("payload")))
	require.NoError(t, b.Close())

	b, err = NewBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	got, err := b.Get(ctx, "book:board")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := NewBadger(BadgerConfig{})
	require.Error(t, err)
}
