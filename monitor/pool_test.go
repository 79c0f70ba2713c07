package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	assert := assert.New(t)

	p := &pool{}
	assert.True(p.Empty())

	_, ok := p.Pop()
	assert.False(ok)

	p.Reset(3)
	assert.False(p.Empty())

	no, ok := p.Peek()
	assert.True(ok)
	assert.Equal(0, no)

	var got []int
	for range 3 {
		no, ok = p.Pop()
		assert.True(ok)
		got = append(got, no)
	}
	assert.Equal([]int{0, 1, 2}, got)
	assert.True(p.Empty())

	p.Push(1)
	no, ok = p.Pop()
	assert.True(ok)
	assert.Equal(1, no)

	p.Reset(2)
	assert.Equal([]int{1, 0}, p.Data)
}
