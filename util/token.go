package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	jwtSecretByte = []byte(os.Getenv("JWTSECRET"))
	jwtMutex      sync.RWMutex
)

// tokenTTL bounds how long an issued token stays valid.
const tokenTTL = 12 * time.Hour

// Claims carries the role scope the engine trusts as-is: the caller's role
// and, for patients, their patient id.
type Claims struct {
	Role      string `json:"role"`
	PatientID string `json:"patientId,omitempty"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SetJWTSecret updates the secret used for both token signing and password
// hashing. Thread-safe; mainly used by tests and startup code.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// HashPassword returns the HMAC-SHA256 digest of password under the JWT
// secret, hex encoded.
func HashPassword(password string) (hashedPassword string) {
	h := hmac.New(sha256.New, GetJWTSecretByte())
	h.Write([]byte(password))
	hashedPassword = hex.EncodeToString(h.Sum(nil))
	return
}

// SignToken issues a signed JWT carrying the role scope.
func SignToken(role, patientID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:      role,
		PatientID: patientID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetJWTSecretByte())
}

// ParseToken validates a signed JWT and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
