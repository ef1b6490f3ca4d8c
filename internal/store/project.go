package store

// UserField identifies a projectable field of a User. The set is closed:
// callers pick fields from this list instead of passing free-form strings.
type UserField string

const (
	UserFieldID        UserField = "id"
	UserFieldUsername  UserField = "username"
	UserFieldCreatedAt UserField = "created_at"
	UserFieldUpdatedAt UserField = "updated_at"
)

// Project returns a partial view of the user containing exactly the named
// fields. The identifier is always exposed under the canonical key "id",
// decoupling callers from the storage field name. Unknown fields are
// ignored; the password hash is never projectable.
func (u *User) Project(fields ...UserField) map[string]any {
	view := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case UserFieldID:
			view["id"] = u.ID
		case UserFieldUsername:
			view["username"] = u.Username
		case UserFieldCreatedAt:
			view["created_at"] = u.CreatedAt
		case UserFieldUpdatedAt:
			view["updated_at"] = u.UpdatedAt
		}
	}
	return view
}
