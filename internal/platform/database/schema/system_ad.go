package schema

// SystemAdTable represents the 'ads' table
type SystemAdTable struct {
	Table     string
	ID        string
	Title     string
	ImageURL  string
	TargetURL string
	Placement string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// SystemAd is the schema definition for ads
var SystemAd = SystemAdTable{
	Table:     "ads",
	ID:        "id",
	Title:     "title",
	ImageURL:  "image_url",
	TargetURL: "target_url",
	Placement: "placement",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SystemAdTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.ImageURL, t.TargetURL, t.Placement, t.IsActive,
		t.CreatedAt, t.UpdatedAt,
	}
}
