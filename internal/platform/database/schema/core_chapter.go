package schema

// CoreChapterTable represents the 'chapters' table
type CoreChapterTable struct {
	Table        string
	ID           string
	BookID       string
	Title        string
	Content      string
	ChapterOrder string
	CreatedAt    string
	UpdatedAt    string
}

// CoreChapter is the schema definition for chapters
var CoreChapter = CoreChapterTable{
	Table:        "chapters",
	ID:           "id",
	BookID:       "book_id",
	Title:        "title",
	Content:      "content",
	ChapterOrder: "chapter_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.Title, t.Content, t.ChapterOrder,
		t.CreatedAt, t.UpdatedAt,
	}
}
