package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted, self-describing bcrypt artifact. Each call
// draws a fresh salt, so hashing the same password twice yields different
// artifacts that both verify.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt artifact.
// bcrypt compares digests in constant time.
func VerifyPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
