package schema

// CoreTagTable represents the 'tags' table
type CoreTagTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// CoreTag is the schema definition for tags
var CoreTag = CoreTagTable{
	Table:     "tags",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "created_at",
}

func (t CoreTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.CreatedAt}
}

// CoreBookTagTable represents the 'book_tags' join table
type CoreBookTagTable struct {
	Table  string
	BookID string
	TagID  string
}

// CoreBookTag is the schema definition for book_tags
var CoreBookTag = CoreBookTagTable{
	Table:  "book_tags",
	BookID: "book_id",
	TagID:  "tag_id",
}
