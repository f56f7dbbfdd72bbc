package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"TAPE0": 0}
	b := map[string]int{"PRINTER": 18, "CARDRD": 16}

	all := maps.Collect(Concat2(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"TAPE0": 0, "PRINTER": 18, "CARDRD": 16}, all)

	count := 0
	for range Concat2(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestSortedAll(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	for k := range SortedAll(map[string]int{"b": 2, "c": 3, "a": 1}) {
		keys = append(keys, k)
	}
	assert.Equal([]string{"a", "b", "c"}, keys)
}
