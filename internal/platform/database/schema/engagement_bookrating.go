package schema

// EngagementBookRatingTable represents the 'book_ratings' table
type EngagementBookRatingTable struct {
	Table     string
	UserID    string
	BookID    string
	Score     string
	CreatedAt string
	UpdatedAt string
}

// EngagementBookRating is the schema definition for book_ratings
var EngagementBookRating = EngagementBookRatingTable{
	Table:     "book_ratings",
	UserID:    "user_id",
	BookID:    "book_id",
	Score:     "score",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
