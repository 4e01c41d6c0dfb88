package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionFiftyThree(t *testing.T) {
	groups := Partition(53, 25)
	require.Len(t, groups, 3)

	assert.Equal(t, Group{ID: 1, Label: "1-25", Start: 0, End: 25}, groups[0])
	assert.Equal(t, Group{ID: 2, Label: "26-50", Start: 25, End: 50}, groups[1])
	assert.Equal(t, Group{ID: 3, Label: "51-53", Start: 50, End: 53}, groups[2])
}

func TestPartitionExactMultiple(t *testing.T) {
	groups := Partition(50, 25)
	require.Len(t, groups, 2)
	assert.Equal(t, "26-50", groups[1].Label)
}

func TestPartitionEmpty(t *testing.T) {
	assert.Empty(t, Partition(0, 25))
	assert.Empty(t, Partition(-3, 25))
	assert.Empty(t, Partition(10, 0))
	assert.Equal(t, 0, Count(0, 25))
}

func TestPartitionCoverage(t *testing.T) {
	for _, pageSize := range []int{1, 3, 20, 25, 100} {
		for n := 1; n <= 120; n++ {
			groups := Partition(n, pageSize)
			require.Len(t, groups, Count(n, pageSize))

			next := 0
			for i, g := range groups {
				assert.Equal(t, i+1, g.ID)
				assert.Equal(t, next, g.Start, "gap or overlap at n=%d p=%d", n, pageSize)
				assert.Greater(t, g.End, g.Start)
				assert.LessOrEqual(t, g.Len(), pageSize)
				next = g.End
			}
			assert.Equal(t, n, next, "n=%d p=%d", n, pageSize)
		}
	}
}

func TestFind(t *testing.T) {
	groups := Partition(53, 25)

	g, ok := Find(groups, 2)
	require.True(t, ok)
	assert.Equal(t, 25, g.Start)

	_, ok = Find(groups, 0)
	assert.False(t, ok)
	_, ok = Find(groups, 4)
	assert.False(t, ok)
}

func TestPrevNext(t *testing.T) {
	id, ok := Prev(53, 25, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, id)

	id, ok = Next(53, 25, 1)
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = Next(53, 25, 3)
	assert.False(t, ok)

	id, ok = Prev(53, 25, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestSlice(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{3, 4, 5}, Slice(items, Group{Start: 3, End: 6}))
	assert.Equal(t, []int{5, 6}, Slice(items, Group{Start: 5, End: 25}))
	assert.Empty(t, Slice(items, Group{Start: 25, End: 50}))
	assert.Empty(t, Slice([]int(nil), Group{Start: 0, End: 25}))

	// Appending to a slice must not clobber the next group's items.
	s := Slice(items, Group{Start: 0, End: 2})
	_ = append(s, 99)
	assert.Equal(t, 2, items[2])
}
