package cratesio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
)

// countingRegistry implements driven.RegistryClient for testing.
type countingRegistry struct {
	gets     atomic.Int32
	searches atomic.Int32
	delay    time.Duration
	err      error
}

func (r *countingRegistry) Search(context.Context, driven.RegistryQuery) (*driven.RegistryPage, error) {
	r.searches.Add(1)
	return &driven.RegistryPage{Total: 1}, nil
}

func (r *countingRegistry) GetCrate(ctx context.Context, name string) (*domain.CrateDetail, error) {
	r.gets.Add(1)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.delay):
	}
	if r.err != nil {
		return nil, r.err
	}
	return &domain.CrateDetail{ID: name, Name: name}, nil
}

func TestCachedClient_CachesDetails(t *testing.T) {
	inner := &countingRegistry{}
	client, err := NewCachedClient(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		d, err := client.GetCrate(context.Background(), "Serde")
		require.NoError(t, err)
		assert.Equal(t, "Serde", d.Name)
	}
	_, err = client.GetCrate(context.Background(), "serde")
	require.NoError(t, err)

	assert.Equal(t, int32(1), inner.gets.Load())
}

func TestCachedClient_DoesNotCacheSearch(t *testing.T) {
	inner := &countingRegistry{}
	client, err := NewCachedClient(inner, 8)
	require.NoError(t, err)

	_, _ = client.Search(context.Background(), driven.RegistryQuery{Term: "x"})
	_, _ = client.Search(context.Background(), driven.RegistryQuery{Term: "x"})

	assert.Equal(t, int32(2), inner.searches.Load())
}

func TestCachedClient_DoesNotCacheErrors(t *testing.T) {
	inner := &countingRegistry{err: errors.New("boom")}
	client, err := NewCachedClient(inner, 8)
	require.NoError(t, err)

	_, err = client.GetCrate(context.Background(), "serde")
	require.Error(t, err)
	_, err = client.GetCrate(context.Background(), "serde")
	require.Error(t, err)

	assert.Equal(t, int32(2), inner.gets.Load())
	assert.Zero(t, client.(*CachedClient).Len())
}

func TestCachedClient_CollapsesConcurrentLookups(t *testing.T) {
	inner := &countingRegistry{delay: 50 * time.Millisecond}
	client, err := NewCachedClient(inner, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.GetCrate(context.Background(), "tokio")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.gets.Load())
}

func TestCachedClient_CancelledCallerDoesNotFailOthers(t *testing.T) {
	inner := &countingRegistry{delay: 150 * time.Millisecond}
	client, err := NewCachedClient(inner, 8)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.GetCrate(ctx, "serde")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return inner.gets.Load() == 1 }, time.Second, time.Millisecond)

	secondErr := make(chan error, 1)
	go func() {
		d, err := client.GetCrate(context.Background(), "serde")
		if err == nil && d.Name != "serde" {
			err = errors.New("wrong crate")
		}
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	assert.NoError(t, <-secondErr)
	assert.Equal(t, int32(1), inner.gets.Load())
	assert.Equal(t, 1, client.(*CachedClient).Len())
}

func TestCachedClient_Evicts(t *testing.T) {
	inner := &countingRegistry{}
	client, err := NewCachedClient(inner, 1)
	require.NoError(t, err)

	_, _ = client.GetCrate(context.Background(), "a")
	_, _ = client.GetCrate(context.Background(), "b")
	_, _ = client.GetCrate(context.Background(), "a")

	assert.Equal(t, int32(3), inner.gets.Load())
}

func TestNewCachedClient_DisabledReturnsInner(t *testing.T) {
	inner := &countingRegistry{}
	client, err := NewCachedClient(inner, 0)

	require.NoError(t, err)
	assert.Same(t, inner, client)
}
