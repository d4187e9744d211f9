package schema

// CoreBookTable represents the 'books' table
type CoreBookTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	Description   string
	CoverURL      string
	Status        string
	Views         string
	Likes         string
	AverageRating string
	RatingCount   string
	CreatedAt     string
	UpdatedAt     string
}

// CoreBook is the schema definition for books
var CoreBook = CoreBookTable{
	Table:         "books",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	CoverURL:      "cover_url",
	Status:        "status",
	Views:         "views",
	Likes:         "likes",
	AverageRating: "average_rating",
	RatingCount:   "rating_count",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.CoverURL, t.Status,
		t.Views, t.Likes, t.AverageRating, t.RatingCount,
		t.CreatedAt, t.UpdatedAt,
	}
}
