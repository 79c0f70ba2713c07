package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	var values []int
	seq := IterSeq2Concat(
		IterSeq2Zip([]string{"a", "b", "c"}, []int{1, 2}),
		maps.All(map[string]int{"z": 26}),
	)
	for k, v := range seq {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal([]string{"a", "b", "z"}, keys)
	assert.Equal([]int{1, 2, 26}, values)

	// Early stop.
	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(1, count)
}
