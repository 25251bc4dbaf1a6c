package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sessioncart/cart"
	"github.com/hupe1980/sessioncart/core"
)

// MockSessionStore is a testify mock of core.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

var _ core.SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Put(ctx context.Context, key string, value []byte) ([]byte, error) {
	args := m.Called(ctx, key, value)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockSessionStore) Has(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) Forget(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockSessionStore) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// StoredState decodes the cart state saved under id.
func StoredState(t *testing.T, store core.SessionStore, codec cart.Codec, id string) cart.State {
	t.Helper()
	raw, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	var st cart.State
	require.NoError(t, codec.Unmarshal(raw, &st))
	return st
}

// SeedState encodes st and stores it under st.ID.
func SeedState(t *testing.T, store core.SessionStore, codec cart.Codec, st cart.State) {
	t.Helper()
	raw, err := codec.Marshal(st)
	require.NoError(t, err)
	_, err = store.Put(context.Background(), st.ID, raw)
	require.NoError(t, err)
}
