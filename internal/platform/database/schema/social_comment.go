package schema

// SocialCommentTable represents the 'comments' table
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	ChapterID string
	Body      string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for comments
var SocialComment = SocialCommentTable{
	Table:     "comments",
	ID:        "id",
	UserID:    "user_id",
	BookID:    "book_id",
	ChapterID: "chapter_id",
	Body:      "body",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.ChapterID, t.Body,
		t.CreatedAt, t.UpdatedAt,
	}
}
