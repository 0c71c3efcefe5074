package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := New(0)
		assert.Equal(t, 0, count.Read())

		count.Set(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("set with equal value is a no-op", func(t *testing.T) {
		calls := 0
		count := New(10, Options[int]{OnChange: func(int) { calls++ }})

		count.Set(10)
		assert.Equal(t, 0, calls)

		count.Set(11)
		assert.Equal(t, 1, calls)
	})

	t.Run("update derives from current value", func(t *testing.T) {
		count := New(1)
		count.Update(func(v int) int { return v + 1 })
		assert.Equal(t, 2, count.Read())
	})

	t.Run("mutate always notifies", func(t *testing.T) {
		type box struct{ items []int }
		calls := 0
		b := New(box{}, Options[box]{OnChange: func(box) { calls++ }})

		b.Mutate(func(v *box) { v.items = append(v.items, 1) })
		assert.Equal(t, []int{1}, b.Read().items)
		assert.Equal(t, 1, calls)

		b.Mutate(func(v *box) {})
		assert.Equal(t, 2, calls)
	})

	t.Run("zero values", func(t *testing.T) {
		err := New[error](nil)
		assert.Nil(t, err.Read())

		err.Set(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")
	})

	t.Run("AsReadonly is stable and tracks", func(t *testing.T) {
		count := New(0)
		ro1 := count.AsReadonly()
		ro2 := count.AsReadonly()
		assert.Same(t, ro1, ro2)

		count.Set(5)
		assert.Equal(t, 5, ro1.Read())
	})
}
