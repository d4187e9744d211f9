package schema

// EngagementBookLikeTable represents the 'book_likes' ledger table
type EngagementBookLikeTable struct {
	Table     string
	UserID    string
	BookID    string
	CreatedAt string
}

// EngagementBookLike is the schema definition for book_likes
var EngagementBookLike = EngagementBookLikeTable{
	Table:     "book_likes",
	UserID:    "user_id",
	BookID:    "book_id",
	CreatedAt: "created_at",
}
