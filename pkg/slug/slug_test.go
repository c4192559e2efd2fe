// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestFrom covers accent folding and punctuation.
*/
func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Ação Épica":            "acao-epica",
		"  Solo Leveling!!  ":   "solo-leveling",
		"One-Punch   Man (2nd)": "one-punch-man-2nd",
		"進撃の巨人":                 "",
	}

	for input, want := range tests {
		assert.Equal(t, want, From(input), input)
	}

	long := From(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(long), 80)
	assert.False(t, strings.HasSuffix(long, "-"))
}

/*
TestWithSuffix verifies disambiguation and empty bases.
*/
func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "tower-of-god-9f3a", WithSuffix("Tower of God", "9F3A"))
	assert.Equal(t, "9f3a", WithSuffix("進撃の巨人", "9f3a"))
}
