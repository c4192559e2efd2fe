// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/ascender/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 50
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage bounds page so (page-1)*limit cannot overflow into a negative OFFSET.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata, deriving TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" with the package defaults.
func FromRequest(r *http.Request) Params {
	return FromRequestWith(r, DefaultLimit, MaxLimit)
}

// FromRequestWith parses "page" and "limit", clamping limit to maxLimit.
// Invalid or negative values fall back to the defaults.
func FromRequestWith(r *http.Request, defaultLimit, maxLimit int) Params {
	page := parsePage(r)
	limit := parseIntParam(r, "limit", defaultLimit)

	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Fixed returns the requested page with a server-chosen page size.
// Any "limit" sent by the client is ignored.
func Fixed(r *http.Request, limit int) Params {
	return Params{Page: parsePage(r), Limit: limit}
}

func parsePage(r *http.Request) int {
	page := parseIntParam(r, "page", DefaultPage)
	if page < 1 {
		return DefaultPage
	}
	return min(page, MaxPage)
}

func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
