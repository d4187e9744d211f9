package schema

// SystemFeedbackTable represents the 'feedback' table
type SystemFeedbackTable struct {
	Table     string
	ID        string
	UserID    string
	Subject   string
	Body      string
	CreatedAt string
}

// SystemFeedback is the schema definition for feedback
var SystemFeedback = SystemFeedbackTable{
	Table:     "feedback",
	ID:        "id",
	UserID:    "user_id",
	Subject:   "subject",
	Body:      "body",
	CreatedAt: "created_at",
}

func (t SystemFeedbackTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Subject, t.Body, t.CreatedAt}
}
