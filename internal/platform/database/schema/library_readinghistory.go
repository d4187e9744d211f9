package schema

// LibraryReadingHistoryTable represents the 'reading_history' table
type LibraryReadingHistoryTable struct {
	Table     string
	UserID    string
	BookID    string
	ChapterID string
	ReadAt    string
}

// LibraryReadingHistory is the schema definition for reading_history
var LibraryReadingHistory = LibraryReadingHistoryTable{
	Table:     "reading_history",
	UserID:    "user_id",
	BookID:    "book_id",
	ChapterID: "chapter_id",
	ReadAt:    "read_at",
}
