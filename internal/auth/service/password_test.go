package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := h.Compare(ctx, hash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, hash, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedHashes(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash(context.Background(), "same-password")
	require.NoError(t, err)
	second, err := h.Hash(context.Background(), "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := service.NewPasswordHasher(100)

	hash, err := h.Hash(context.Background(), "pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestPasswordHasher_CorruptHash(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)

	ok, err := h.Compare(context.Background(), "not-a-bcrypt-hash", "pw")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_CanceledContext(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hash, err := h.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, hash)
}

func TestPasswordHasher_Concurrent(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(ctx, "pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, err := h.Compare(ctx, hash, "pw"); err != nil || !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPasswordHasher_CompareDummy(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)

	assert.NotPanics(t, func() {
		h.CompareDummy(context.Background(), "anything")
	})
}
