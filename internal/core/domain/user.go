package domain

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// PredictionRecord is a single estimate stored in a user's history.
// Field names mirror the persisted user-store document, so renaming any of
// them breaks compatibility with existing stores.
type PredictionRecord struct {
	Location string  `json:"location" bson:"location"`
	Sqft     float64 `json:"sqft" bson:"sqft"`
	BHK      int     `json:"bhk" bson:"bhk"`
	Price    float64 `json:"price" bson:"price"`
	Time     string  `json:"time" bson:"time"` // "YYYY-MM-DD HH:MM"
}

// User models an account in the credential vault. Username is the primary
// key (case-sensitive). History is append-only and kept in insertion order.
type User struct {
	Username     string             `json:"-"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role,omitempty"`
	History      []PredictionRecord `json:"history"`
}

// EffectiveRole treats records written before the role attribute existed as
// regular clients.
func (u *User) EffectiveRole() string {
	if u.Role == "" {
		return RoleClient
	}
	return u.Role
}
