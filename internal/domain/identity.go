package domain

// Identity is the authenticated caller for one session. It is captured once
// at construction of whatever needs it, never looked up ambiently.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
}

// User is the stored account profile.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
}
