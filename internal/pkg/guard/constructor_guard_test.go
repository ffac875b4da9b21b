package guard_test

import (
	"errors"
	"testing"

	"procurement/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("should pass for a guard created via NewConstructorGuard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("query must be created via its constructor")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return the given validation error for a zero value guard", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("query must be created via its constructor")

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("should fall back to the default error when nil is passed", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("should keep validating after copies are made", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, g.Validate(nil))
		require.NoError(t, copied.Validate(nil))
	})
}

// The guard is meant to be embedded in query commands so a zero value
// struct cannot slip past its constructor's argument checks.
func TestConstructorGuard_EmbeddedInQueryCommand(t *testing.T) {
	errQueryNotConstructed := errors.New("order statistics query must be created via its constructor")

	type orderStatisticsQuery struct {
		guard        guard.ConstructorGuard
		supplierID   string
		includeDraft bool
	}

	newOrderStatisticsQuery := func(supplierID string, includeDraft bool) (orderStatisticsQuery, error) {
		if supplierID == "" {
			return orderStatisticsQuery{}, errors.New("supplierID is required")
		}
		return orderStatisticsQuery{
			guard:        guard.NewConstructorGuard(),
			supplierID:   supplierID,
			includeDraft: includeDraft,
		}, nil
	}

	t.Run("should validate a query built through its constructor", func(t *testing.T) {
		q, err := newOrderStatisticsQuery("4f2c7a10-9f6e-4f2b-a0c1-3d5e8b6a1c22", true)

		require.NoError(t, err)
		require.NoError(t, q.guard.Validate(errQueryNotConstructed))
		assert.Equal(t, "4f2c7a10-9f6e-4f2b-a0c1-3d5e8b6a1c22", q.supplierID)
		assert.True(t, q.includeDraft)
	})

	t.Run("should reject a zero value query with the query's own error", func(t *testing.T) {
		var q orderStatisticsQuery

		err := q.guard.Validate(errQueryNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errQueryNotConstructed, err)
	})

	t.Run("should surface constructor argument errors before the guard matters", func(t *testing.T) {
		_, err := newOrderStatisticsQuery("", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "supplierID is required")
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	done := make(chan struct{})
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
			done <- struct{}{}
		}()
	}
	for range 50 {
		<-done
	}
}
