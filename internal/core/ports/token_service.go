package ports

// TokenClaims is the verified claim set carried by a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenIssuer produces signed, time-bounded bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier parses and validates a bearer token string. Failures are
// domain.ErrExpiredToken for a token past its expiry and domain.ErrInvalidToken
// for anything structurally or cryptographically wrong.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
