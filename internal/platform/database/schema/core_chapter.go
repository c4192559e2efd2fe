// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table      string
	ID         string
	WorkID     string
	OwnerID    string
	Number     string
	Title      string
	Pages      string
	PageKeys   string
	Status     string
	ViewsTotal string
	CreatedAt  string
	UpdatedAt  string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:      "core.chapter",
	ID:         "id",
	WorkID:     "workid",
	OwnerID:    "ownerid",
	Number:     "number",
	Title:      "title",
	Pages:      "pages",
	PageKeys:   "pagekeys",
	Status:     "status",
	ViewsTotal: "viewstotal",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.WorkID, t.OwnerID, t.Number, t.Title, t.Pages, t.PageKeys,
		t.Status, t.ViewsTotal, t.CreatedAt, t.UpdatedAt,
	}
}
