// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload hands out presigned URLs so browsers can send images straight to
object storage.

The API never receives image bytes. A client declares the content type and size
of each file; once the declaration passes validation, a [Presigner] returns the
URL to PUT to and the public URL to store on the work, chapter or profile.
*/
package upload

import (
	"context"
	"strings"

	"github.com/taibuivan/ascender/internal/platform/apperr"
)

// Folder groups objects by what they illustrate.
type Folder string

const (
	FolderCovers  Folder = "covers"
	FolderPages   Folder = "pages"
	FolderAvatars Folder = "avatars"
)

// File is the client's declaration of one object.
type File struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Signed is a single upload slot.
type Signed struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// PagesInput declares every page of a chapter.
type PagesInput struct {
	Files []File `json:"files"`
}

// Pages wraps the signed slots in page order.
type Pages struct {
	URLs []*Signed `json:"urls"`
}

const (
	MaxFileSize = 10 << 20
	MaxPages    = 100

	FieldContentType = "content_type"
	FieldSize        = "size"
	FieldFiles       = "files"
)

// ContentTypes lists the accepted image formats.
var ContentTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// extension maps a content type to the object key suffix.
func extension(contentType string) string {
	ext := strings.TrimPrefix(contentType, "image/")
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// Presigner signs a PUT for a key chosen by the service.
type Presigner interface {
	Presign(context context.Context, key string, file File) (*Signed, error)
}

// ErrNotConfigured is returned while no object storage is attached.
var ErrNotConfigured = apperr.ServiceUnavailable("Upload service not configured")

// NotConfigured is the [Presigner] used when no object storage is attached.
type NotConfigured struct{}

func (NotConfigured) Presign(context.Context, string, File) (*Signed, error) {
	return nil, ErrNotConfigured
}
