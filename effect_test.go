package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalgraph/reactive/internal/graph"
)

func TestEffect(t *testing.T) {
	t.Run("initial run happens on the first flush without any write", func(t *testing.T) {
		count := New(1)
		runs := 0
		NewEffect(func() {
			runs++
			_ = count.Read()
		})

		assert.NoError(t, Flush())
		assert.Equal(t, 1, runs)
	})

	t.Run("reruns when a dependency changes, batched per flush", func(t *testing.T) {
		count := New(1)
		var seen []int
		NewEffect(func() {
			seen = append(seen, count.Read())
		})
		assert.NoError(t, Flush())

		count.Set(2)
		count.Set(3)
		assert.NoError(t, Flush())

		assert.Equal(t, []int{1, 3}, seen)
	})

	t.Run("cleanup runs before the next run and on destroy", func(t *testing.T) {
		count := New(1)
		var cleanups int
		e := NewEffect(func() func() {
			_ = count.Read()
			return func() { cleanups++ }
		})
		assert.NoError(t, Flush())
		assert.Equal(t, 0, cleanups)

		count.Set(2)
		assert.NoError(t, Flush())
		assert.Equal(t, 1, cleanups)

		e.Destroy()
		assert.Equal(t, 2, cleanups)
	})

	t.Run("destroyed effect does not rerun", func(t *testing.T) {
		count := New(1)
		runs := 0
		e := NewEffect(func() {
			runs++
			_ = count.Read()
		})
		assert.NoError(t, Flush())
		assert.Equal(t, 1, runs)

		e.Destroy()
		count.Set(2)
		assert.NoError(t, Flush())
		assert.Equal(t, 1, runs)
	})

	t.Run("callback panic is reported through OnError", func(t *testing.T) {
		var got error
		sched := graph.GetRuntime().Scheduler()
		sched.OnError = func(err error) { got = err }
		defer func() { sched.OnError = nil }()

		NewEffect(func() {
			panic("effect exploded")
		})
		_ = Flush()

		assert.Error(t, got)
	})
}
