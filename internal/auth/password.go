package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Credentials is the single administrator account configured for the
// service.
type Credentials struct {
	User         string
	PasswordHash string
}

// Check reports whether user and password match.  The password hash is
// always compared so a wrong user name takes as long as a wrong password.
func (c Credentials) Check(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.User), []byte(user)) == 1
	passOK := VerifyPassword(c.PasswordHash, password)
	return userOK && passOK
}
