// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package audittest provides an in-memory [audit.Recorder] for service tests.
package audittest

import (
	"context"
	"sync"

	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
)

// Recorder keeps every recorded entry in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

// Record implements [audit.Recorder].
func (recorder *Recorder) Record(_ context.Context, actor *sec.Viewer, action audit.Action, targetType, targetID, detail string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	entry := audit.Entry{Action: action, TargetType: targetType, TargetID: targetID, Detail: detail}
	if actor != nil {
		entry.ActorID = actor.UserID
	}
	recorder.entries = append(recorder.entries, entry)
}

// Entries returns a copy of what has been recorded so far.
func (recorder *Recorder) Entries() []audit.Entry {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]audit.Entry(nil), recorder.entries...)
}

// Actions returns the recorded actions in order.
func (recorder *Recorder) Actions() []audit.Action {
	entries := recorder.Entries()
	actions := make([]audit.Action, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
