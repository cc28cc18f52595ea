package negotiation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Regexp(t, referencePattern, NewReference(time.Now()))
	}
	assert.Regexp(t, `^QR-000000\d{3}$`, NewReference(time.UnixMilli(0)))
}

func TestWithRetries(t *testing.T) {
	errRetry := errors.New("retry me")
	errFatal := errors.New("fatal")
	retryable := func(err error) bool { return errors.Is(err, errRetry) }

	t.Run("succeeds first time", func(t *testing.T) {
		calls := 0
		err := WithRetries(func() error { calls++; return nil }, 3, retryable)
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := WithRetries(func() error {
			calls++
			if calls < 3 {
				return errRetry
			}
			return nil
		}, 3, retryable)
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := WithRetries(func() error { calls++; return errRetry }, 3, retryable)
		assert.ErrorIs(t, err, errRetry)
		assert.Equal(t, 4, calls)
	})

	t.Run("stops on non retryable error", func(t *testing.T) {
		calls := 0
		err := WithRetries(func() error { calls++; return errFatal }, 3, retryable)
		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})
}

func TestSubmit_ReferenceCollisionRetriesOnce(t *testing.T) {
	candidates := []string{"QR-123456001", "QR-123456001", "QR-123456002"}
	var mu sync.Mutex
	calls := 0
	gen := func(time.Time) string {
		mu.Lock()
		defer mu.Unlock()
		ref := candidates[calls]
		calls++
		return ref
	}
	f := newFixture(t, WithReferenceGenerator(gen))

	first := f.submit(t)
	assert.Equal(t, "QR-123456001", first.Reference)
	assert.Equal(t, 1, calls)

	second := f.submit(t)
	assert.Equal(t, "QR-123456002", second.Reference)
	assert.Equal(t, 3, calls, "the collision costs exactly one extra attempt")
}

func TestSubmit_ReferenceCollisionGivesUp(t *testing.T) {
	f := newFixture(t, WithReferenceGenerator(func(time.Time) string { return "QR-999999999" }))
	f.submit(t)

	_, err := f.svc.Submit(f.ctx, f.customer, f.tripParams(tourOpen))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestSubmit_ConcurrentReferencesAreUnique(t *testing.T) {
	f := newFixture(t)

	const n = 25
	refs := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := f.svc.Submit(f.ctx, f.customer, f.tripParams(tourOpen))
			errs[i] = err
			if err == nil {
				refs[i] = q.Reference
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[refs[i]], "duplicate reference %s", refs[i])
		seen[refs[i]] = true
	}
}
