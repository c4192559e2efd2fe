// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestMapFilter covers ordering and nil input.
*/
func TestMapFilter(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Nil(t, Map[int, string](nil, strconv.Itoa))

	even := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Empty(t, Filter([]int{1, 3}, func(v int) bool { return v%2 == 0 }))
}
