package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	Status    string
	AvatarURL string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users
var UserAccount = UserAccountTable{
	Table:     "users",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "password_hash",
	Role:      "role",
	Status:    "status",
	AvatarURL: "avatar_url",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.Role, t.Status,
		t.AvatarURL, t.CreatedAt, t.UpdatedAt,
	}
}
