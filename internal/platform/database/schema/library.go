// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryFavoriteTable represents the 'library.favorite' table
type LibraryFavoriteTable struct {
	Table     string
	UserID    string
	WorkID    string
	CreatedAt string
}

// LibraryFavorite is the schema definition for library.favorite
var LibraryFavorite = LibraryFavoriteTable{
	Table:     "library.favorite",
	UserID:    "userid",
	WorkID:    "workid",
	CreatedAt: "createdat",
}

// LibraryHistoryTable represents the 'library.history' table
type LibraryHistoryTable struct {
	Table     string
	UserID    string
	WorkID    string
	ChapterID string
	Progress  string
	UpdatedAt string
}

// LibraryHistory is the schema definition for library.history
var LibraryHistory = LibraryHistoryTable{
	Table:     "library.history",
	UserID:    "userid",
	WorkID:    "workid",
	ChapterID: "chapterid",
	Progress:  "progress",
	UpdatedAt: "updatedat",
}
