// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/pkg/slice"
)

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4, 5}, even))

	empty := slice.Filter([]int{1, 3}, even)
	require.NotNil(t, empty)

	encoded, err := json.Marshal(slice.Filter[int](nil, even))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))
}
