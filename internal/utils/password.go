package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the salt rounds the existing user documents were
// hashed with.
const bcryptCost = 10

// HashPassword is the prepare-for-write transformation for the user
// credential. The write path calls it whenever the password field
// changes; it is never hidden inside the entity.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
