package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int
}

func TestRegisterAndGet(t *testing.T) {
	reg := New[item]("widget")
	assert.Equal(t, 0, reg.Count())

	require.NoError(t, reg.Register("b", item{ID: 2}))
	require.NoError(t, reg.Register("a", item{ID: 1}))

	got, err := reg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	assert.True(t, reg.Has("b"))
	assert.False(t, reg.Has("c"))
	assert.Equal(t, []string{"a", "b"}, reg.List())
	assert.Equal(t, 2, reg.Count())
}

func TestRegisterErrors(t *testing.T) {
	reg := New[item]("widget")

	err := reg.Register("", item{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "widget name cannot be empty")

	require.NoError(t, reg.Register("x", item{}))
	err = reg.Register("x", item{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestGetMissing(t *testing.T) {
	reg := New[item]("")
	require.NoError(t, reg.Register("known", item{}))

	_, err := reg.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "item 'missing' is not registered")
	assert.Equal(t, []string{"known"}, errors.GetErrorDetails(err)["known"])
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New[item]("widget")
	MustRegister(reg, "x", item{})
	assert.Panics(t, func() { MustRegister(reg, "x", item{}) })
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[item]("widget")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("w%02d", n)
			assert.NoError(t, reg.Register(name, item{ID: n}))
			assert.True(t, reg.Has(name))
			_ = reg.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, reg.Count())
}
