package schema

// EngagementFavoriteTable represents the 'favorites' table
type EngagementFavoriteTable struct {
	Table     string
	UserID    string
	BookID    string
	CreatedAt string
}

// EngagementFavorite is the schema definition for favorites
var EngagementFavorite = EngagementFavoriteTable{
	Table:     "favorites",
	UserID:    "user_id",
	BookID:    "book_id",
	CreatedAt: "created_at",
}
