// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreWorkTable represents the 'core.work' table
type CoreWorkTable struct {
	Table          string
	ID             string
	Slug           string
	Title          string
	Synopsis       string
	Genres         string
	CoverURL       string
	CoverKey       string
	OwnerID        string
	OriginalAuthor string
	Status         string
	ViewsTotal     string
	ViewsWeek      string
	CreatedAt      string
	UpdatedAt      string
}

// CoreWork is the schema definition for core.work
var CoreWork = CoreWorkTable{
	Table:          "core.work",
	ID:             "id",
	Slug:           "slug",
	Title:          "title",
	Synopsis:       "synopsis",
	Genres:         "genres",
	CoverURL:       "coverurl",
	CoverKey:       "coverkey",
	OwnerID:        "ownerid",
	OriginalAuthor: "originalauthor",
	Status:         "status",
	ViewsTotal:     "viewstotal",
	ViewsWeek:      "viewsweek",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t CoreWorkTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Synopsis, t.Genres, t.CoverURL, t.CoverKey, t.OwnerID,
		t.OriginalAuthor, t.Status, t.ViewsTotal, t.ViewsWeek, t.CreatedAt, t.UpdatedAt,
	}
}
