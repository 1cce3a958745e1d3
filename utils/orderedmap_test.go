package utils_test

import (
	"testing"

	"github.com/jpmpuerm/infirmary-client/utils"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMapKeepsFirstInsertionOrder(t *testing.T) {
	m := utils.NewOrderedMap[string, []int]()

	for i, key := range []string{"G2", "G1", "G2", "G3", "G1"} {
		entry := m.GetOrCreate(key, func() []int { return []int{} })
		*entry = append(*entry, i)
	}

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"G2", "G1", "G3"}, m.Keys())
	assert.Equal(t, [][]int{{0, 2}, {1, 4}, {3}}, m.Values())

	value, ok := m.Get("G1")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 4}, value)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMapCreatesOnlyOnce(t *testing.T) {
	m := utils.NewOrderedMap[int, string]()
	calls := 0
	create := func() string {
		calls++
		return "created"
	}

	m.GetOrCreate(1, create)
	m.GetOrCreate(1, create)

	assert.Equal(t, 1, calls)
}
