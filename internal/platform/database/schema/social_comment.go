// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	WorkID    string
	AuthorID  string
	Content   string
	CreatedAt string
	DeletedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	WorkID:    "workid",
	AuthorID:  "authorid",
	Content:   "content",
	CreatedAt: "createdat",
	DeletedAt: "deletedat",
}

// SocialLikeTable represents the 'social.worklike' table
type SocialLikeTable struct {
	Table     string
	WorkID    string
	UserID    string
	CreatedAt string
}

// SocialLike is the schema definition for social.worklike
var SocialLike = SocialLikeTable{
	Table:     "social.worklike",
	WorkID:    "workid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
