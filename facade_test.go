package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSignal(t *testing.T) {
	count := New(1)
	doubled := NewMemo(func() int { return count.Read() * 2 })

	assert.True(t, IsSignal(count))
	assert.True(t, IsSignal(count.AsReadonly()))
	assert.True(t, IsSignal(doubled))
	assert.False(t, IsSignal(42))
	assert.False(t, IsSignal("not a signal"))
}

func TestUntracked(t *testing.T) {
	count := New(5)

	snapshot := NewMemo(func() int {
		return Untracked(func() int { return count.Read() })
	})

	v, err := snapshot.Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)

	count.Set(6) // no edge was recorded, so this never invalidates snapshot

	v, err = snapshot.Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
}
