package domain

// Identity is the authenticated user as the backend reports it.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}
