// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, ensuring consistent error handling across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/ctxutil"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/pkg/convert"
)

// maxBodyBytes bounds JSON payloads; chapter page lists are the largest bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if decoding fails.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a query string value.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
QueryBool parses "true"/"1" style flags; anything unparsable is false.
*/
func QueryBool(request *http.Request, name string) bool {
	return convert.ToBool(request.URL.Query().Get(name))
}

/*
QueryOptionalBool returns nil when the flag is absent or unparsable.
*/
func QueryOptionalBool(request *http.Request, name string) *bool {
	return convert.ToOptionalBool(request.URL.Query().Get(name))
}

/*
Viewer returns the request's viewer, nil when anonymous.
*/
func Viewer(request *http.Request) *sec.Viewer {
	return ctxutil.GetViewer(request.Context())
}

/*
ClientHash returns the keyed digest of the client IP.
*/
func ClientHash(request *http.Request) string {
	return ctxutil.GetClientHash(request.Context())
}
