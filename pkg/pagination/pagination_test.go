// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestFromRequest_Clamping verifies defaults and the upper bound.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20}},
		{"?page=3&limit=10", Params{Page: 3, Limit: 10}},
		{"?page=-2&limit=0", Params{Page: 1, Limit: 20}},
		{"?limit=500", Params{Page: 1, Limit: 50}},
		{"?page=abc", Params{Page: 1, Limit: 20}},
		{"?page=200000000000000000&limit=50", Params{Page: MaxPage, Limit: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, FromRequest(httptest.NewRequest("GET", "/works"+tt.query, nil)))
		})
	}

	fixed := Fixed(httptest.NewRequest("GET", "/admin/logs?page=2&limit=5", nil), 50)
	assert.Equal(t, Params{Page: 2, Limit: 50}, fixed)
	assert.Equal(t, 50, fixed.Offset())

	assert.Equal(t, Params{Page: 1, Limit: 50}, Fixed(httptest.NewRequest("GET", "/admin/logs?limit=1", nil), 50))
}

/*
TestOffset_HugePage verifies that an oversized page still yields a valid OFFSET.
*/
func TestOffset_HugePage(t *testing.T) {
	params := Fixed(httptest.NewRequest("GET", "/admin/logs?page=200000000000000000", nil), MaxLimit)

	assert.Equal(t, MaxPage, params.Page)
	assert.GreaterOrEqual(t, params.Offset(), 0)
	assert.LessOrEqual(t, params.Offset(), math.MaxInt32)
}

/*
TestNewMeta verifies total page rounding.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, NewMeta(1, 20, 41).TotalPages)
	assert.Equal(t, 0, NewMeta(1, 20, 0).TotalPages)
}
