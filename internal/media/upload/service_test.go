// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

type fakePresigner struct {
	keys []string
}

func (presigner *fakePresigner) Presign(_ context.Context, key string, _ File) (*Signed, error) {
	presigner.keys = append(presigner.keys, key)
	return &Signed{
		Key:       key,
		UploadURL: "https://storage.test/put/" + key,
		PublicURL: "https://cdn.test/" + key,
	}, nil
}

func newService(presigner Presigner) *Service {
	return NewService(presigner, ratelimit.New(ratelimit.NewMemoryStore()), slog.Default())
}

func translator() *sec.Viewer {
	return &sec.Viewer{UserID: uuid.New(), Role: sec.RoleApprenticeTranslator}
}

var png = File{ContentType: "image/png", Size: 2048}

/*
TestCover_Authorization verifies covers need a translator in good standing.
*/
func TestCover_Authorization(t *testing.T) {
	service := newService(&fakePresigner{})

	_, err := service.Cover(context.Background(), &sec.Viewer{UserID: uuid.New(), Role: sec.RoleReader}, png)
	assert.ErrorIs(t, err, sec.ErrTranslatorOnly)

	banned := translator()
	banned.Banned = true
	_, err = service.Cover(context.Background(), banned, png)
	assert.ErrorIs(t, err, sec.ErrSoftBanned)

	signed, err := service.Cover(context.Background(), translator(), File{ContentType: "image/jpeg", Size: 100})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.Key, "covers/"))
	assert.True(t, strings.HasSuffix(signed.Key, ".jpg"))
}

/*
TestAvatar_SoftBanAllowed verifies any non hard-banned user may sign an avatar.
*/
func TestAvatar_SoftBanAllowed(t *testing.T) {
	service := newService(&fakePresigner{})

	soft := &sec.Viewer{UserID: uuid.New(), Role: sec.RoleReader, Banned: true}
	signed, err := service.Avatar(context.Background(), soft, png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.Key, "avatars/"))

	hard := &sec.Viewer{UserID: uuid.New(), BannedTotal: true}
	_, err = service.Avatar(context.Background(), hard, png)
	assert.ErrorIs(t, err, sec.ErrHardBanned)
}

/*
TestValidateFile covers the accepted formats and the size bound.
*/
func TestValidateFile(t *testing.T) {
	service := newService(&fakePresigner{})

	tests := []struct {
		name string
		file File
		ok   bool
	}{
		{"webp", File{ContentType: "image/webp", Size: MaxFileSize}, true},
		{"gif rejected", File{ContentType: "image/gif", Size: 10}, false},
		{"too large", File{ContentType: "image/png", Size: MaxFileSize + 1}, false},
		{"empty", File{ContentType: "image/png", Size: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Avatar(context.Background(), &sec.Viewer{UserID: uuid.New()}, tt.file)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			}
		})
	}
}

/*
TestPages_Batch verifies the page count bound and ordering of signed slots.
*/
func TestPages_Batch(t *testing.T) {
	presigner := &fakePresigner{}
	service := newService(presigner)
	viewer := translator()

	_, err := service.Pages(context.Background(), viewer, PagesInput{})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	tooMany := make([]File, MaxPages+1)
	for i := range tooMany {
		tooMany[i] = png
	}
	_, err = service.Pages(context.Background(), viewer, PagesInput{Files: tooMany})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	pages, err := service.Pages(context.Background(), viewer, PagesInput{Files: []File{png, {ContentType: "image/webp", Size: 5}}})
	require.NoError(t, err)
	require.Len(t, pages.URLs, 2)
	assert.Equal(t, presigner.keys, []string{pages.URLs[0].Key, pages.URLs[1].Key})
	assert.True(t, strings.HasSuffix(pages.URLs[1].Key, ".webp"))
}

/*
TestUpload_QuotaAndUnconfigured verifies the shared upload quota and the
default presigner.
*/
func TestUpload_QuotaAndUnconfigured(t *testing.T) {
	service := newService(nil)
	viewer := translator()

	for i := 0; i < ratelimit.Upload.Max; i++ {
		_, err := service.Cover(context.Background(), viewer, png)
		assert.ErrorIs(t, err, ErrNotConfigured)
	}

	_, err := service.Cover(context.Background(), viewer, png)
	assert.True(t, apperr.HasCode(err, "RATE_LIMITED"))
}
