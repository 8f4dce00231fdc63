package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// Tokens are short lived on purpose: there is no refresh flow, expiry means
// logging in again.
const tokenLifetime = time.Hour

var ErrInvalidToken = errors.New("invalid token")

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// CreateToken issues a signed bearer token carrying the user's id and
// username.
func CreateToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["user_id"] = userID
	claims["username"] = username
	claims["exp"] = time.Now().Add(tokenLifetime).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractToken pulls the raw bearer token off the Authorization header.
func ExtractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

// ExtractTokenID verifies the request's bearer token and returns the user id
// embedded in it.
func ExtractTokenID(r *http.Request) (uint, error) {
	claims, err := parse(ExtractToken(r))
	if err != nil {
		return 0, err
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(uid), nil
}

// ExtractTokenUsername returns the username claim of a verified token.
func ExtractTokenUsername(r *http.Request) (string, error) {
	claims, err := parse(ExtractToken(r))
	if err != nil {
		return "", err
	}
	username, ok := claims["username"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return username, nil
}
