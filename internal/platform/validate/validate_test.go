// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Solo Leveling", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Lengths checks rune-based length limits.
*/
func TestValidator_Lengths(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("content", "ありがとう", 5).MinLen("content", "ab", 1)
	assert.False(t, v.HasErrors())

	v.MaxLen("content", "ありがとう!", 5)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_URL checks URL rules against go-playground's http_url grammar.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://cdn.example.com/covers/1.webp", true},
		{"http", "http://localhost:9000/a.png", true},
		{"no scheme", "cdn.example.com/a.png", false},
		{"javascript", "javascript:alert(1)", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("coverUrl", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}

	optional := &validate.Validator{}
	optional.OptionalURL("avatarUrl", "")
	assert.False(t, optional.HasErrors())
}

/*
TestValidator_URLs reports the index of the first bad page.
*/
func TestValidator_URLs(t *testing.T) {
	v := &validate.Validator{}
	v.URLs("pages", []string{"https://a.example/1.png", "nope", "also-bad"})

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "pages[1]", ae.Details[0].Field)
}

/*
TestValidator_CountAndOneOf covers collection caps and enum checks.
*/
func TestValidator_CountAndOneOf(t *testing.T) {
	v := &validate.Validator{}
	v.Count("pages", 0, 1, 100).OneOf("status", "approved", "approved", "rejected")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "pages", ae.Details[0].Field)

	v = &validate.Validator{}
	v.OneOf("status", "pending", "approved", "rejected")
	assert.True(t, v.HasErrors())
}
