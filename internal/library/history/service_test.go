// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

type memoryHistory struct {
	rows map[[2]string]Input
}

func (repository *memoryHistory) Upsert(_ context.Context, userID string, input Input) error {
	repository.rows[[2]string{userID, input.WorkID}] = input
	return nil
}

func (repository *memoryHistory) List(_ context.Context, userID string, limit int) ([]*Entry, error) {
	entries := []*Entry{}
	for key, input := range repository.rows {
		if key[0] == userID && len(entries) < limit {
			entries = append(entries, &Entry{WorkID: input.WorkID, ChapterID: input.ChapterID, Progress: input.Progress})
		}
	}
	return entries, nil
}

/*
TestRecord_OneRowPerWork verifies a later chapter replaces the earlier position.
*/
func TestRecord_OneRowPerWork(t *testing.T) {
	service := NewService(&memoryHistory{rows: map[[2]string]Input{}})
	reader := &sec.Viewer{UserID: uuid.New(), Banned: true}
	workID := uuid.New()

	require.NoError(t, service.Record(context.Background(), reader, Input{WorkID: workID, ChapterID: uuid.New(), Progress: 100}))
	latest := uuid.New()
	require.NoError(t, service.Record(context.Background(), reader, Input{WorkID: workID, ChapterID: latest, Progress: 40}))

	entries, err := service.List(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, latest, entries[0].ChapterID)
	assert.Equal(t, 40, entries[0].Progress)
}

/*
TestRecord_Validation verifies ids and progress bounds.
*/
func TestRecord_Validation(t *testing.T) {
	service := NewService(&memoryHistory{rows: map[[2]string]Input{}})
	reader := &sec.Viewer{UserID: uuid.New()}

	tests := []struct {
		name  string
		input Input
	}{
		{"progress above", Input{WorkID: uuid.New(), ChapterID: uuid.New(), Progress: 101}},
		{"progress below", Input{WorkID: uuid.New(), ChapterID: uuid.New(), Progress: -1}},
		{"bad work id", Input{WorkID: "12", ChapterID: uuid.New()}},
		{"missing chapter", Input{WorkID: uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Record(context.Background(), reader, tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		})
	}

	assert.ErrorIs(t, service.Record(context.Background(), nil, Input{}), sec.ErrLoginRequired)
}
