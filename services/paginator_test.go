package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateSecondPartialPage(t *testing.T) {
	items := seq(10)
	assert.Equal(t, 2, PageCount(len(items), 6))
	assert.Equal(t, []int{6, 7, 8, 9}, Paginate(items, 6, 2))
}

func TestPaginateOutOfRange(t *testing.T) {
	items := seq(10)
	assert.Empty(t, Paginate(items, 6, 3))
	assert.Empty(t, Paginate(items, 6, 0))
	assert.Empty(t, Paginate(items, 0, 1))
	assert.Empty(t, Paginate([]int{}, 6, 1))
	assert.Equal(t, 0, PageCount(0, 6))
}

func TestPaginateReconstructs(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13, 100} {
		for _, size := range []int{1, 3, 6, 10} {
			items := seq(n)
			var joined []int
			for p := 1; p <= PageCount(n, size); p++ {
				joined = append(joined, Paginate(items, size, p)...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPageNavigationFlags(t *testing.T) {
	p := Page[int]{Number: 1, Count: 2}
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())

	p.Number = 2
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())
}
