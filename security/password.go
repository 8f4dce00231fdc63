package security

import "golang.org/x/crypto/bcrypt"

// Fixed cost for the adaptive hash. Raising it only affects newly hashed
// passwords; existing hashes keep verifying.
const hashCost = bcrypt.DefaultCost

func Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), hashCost)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
