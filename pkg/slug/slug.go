// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Work titles arrive in Portuguese, Japanese romanization and English, so
// accents are folded before sanitizing (e.g., "Ação Épica" -> "acao-epica").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// maxLength keeps slugs readable in URLs.
const maxLength = 80

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// 1. Normalizes to NFD and removes combining marks (accents).
// 2. Lowercases.
// 3. Replaces everything but ASCII letters and digits with hyphens.
// 4. Collapses hyphens, trims them, and caps the length.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}

	return result
}

// WithSuffix appends a short disambiguator, e.g. the tail of the row id, so
// two works with the same title still get distinct slugs.
func WithSuffix(s, suffix string) string {
	base := From(s)
	suffix = From(suffix)
	switch {
	case base == "":
		return suffix
	case suffix == "":
		return base
	default:
		return base + "-" + suffix
	}
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
