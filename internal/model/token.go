package model

// TokenManager issues and validates session tokens carrying a user id.
type TokenManager interface {
	Generate(userID int64) (string, error)
	Parse(token string) (int64, error)
}
