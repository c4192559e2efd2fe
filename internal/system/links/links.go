// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package links stores the site-wide public links (community chat, donation
// page) that the owner configures and every visitor can read.
package links

import (
	"time"

	"github.com/taibuivan/ascender/internal/platform/constants"
)

// Link is one configured key/value pair.
type Link struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyTelegram is the community group link quoted in role approval notifications.
const KeyTelegram = constants.PublicLinkTelegram

const (
	FieldKey   = "key"
	FieldValue = "value"
)
