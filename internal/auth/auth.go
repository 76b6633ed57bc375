// Package auth provides functions for handling password hashing and JWT authentication
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenIssuer is the "iss" claim of every access token minted here.
	TokenIssuer = "pincher-notes"
	// BcryptCost is the work factor for newly created bcrypt hashes.
	BcryptCost = 10
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	// ErrPasswordTooLong is returned by HashPassword for bcrypt inputs over 72 bytes.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// HashAlgorithm selects how new password hashes are produced.
// Verification never depends on it; see CheckPasswordHash.
type HashAlgorithm string

const (
	HashBcrypt   HashAlgorithm = "bcrypt"
	HashArgon2id HashAlgorithm = "argon2id"
)

func ParseHashAlgorithm(s string) (HashAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(HashBcrypt):
		return HashBcrypt, nil
	case string(HashArgon2id):
		return HashArgon2id, nil
	default:
		return "", fmt.Errorf("unsupported password hash algorithm: %q", s)
	}
}

func HashPassword(password string, algo HashAlgorithm) (string, error) {
	switch algo {
	case HashArgon2id:
		hash, err := argon2id.CreateHash(password, &argon2id.Params{
			Memory:      64 * 1024,
			Iterations:  3,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		})
		if err != nil {
			return "", err
		}
		return hash, nil
	case HashBcrypt, "":
		hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	default:
		return "", fmt.Errorf("unsupported password hash algorithm: %q", algo)
	}
}

// CheckPasswordHash reports whether password matches hash. The hash format
// is detected from its prefix, so bcrypt and argon2id hashes can coexist.
// A non-nil error means the hash itself could not be used.
func CheckPasswordHash(password, hash string) (bool, error) {
	if strings.HasPrefix(hash, "$argon2id$") {
		match, err := argon2id.ComparePasswordAndHash(password, hash)
		if err != nil {
			return false, err
		}
		return match, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Claims are the registered claims plus the caller's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func MakeJWT(userID uuid.UUID, role Role, method *jwt.SigningMethodHMAC, tokenSecret string, expiresIn time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Subject:   userID.String(),
		},
		Role: role.String(),
	}

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(tokenSecret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

// ValidateJWT verifies signature, algorithm and expiry of tokenString.
// Expired tokens yield ErrTokenExpired; every other failure wraps ErrInvalidToken.
func ValidateJWT(tokenString, tokenSecret, algorithm string) (Identity, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method: " + token.Method.Alg())
		}
		if algorithm != token.Method.Alg() {
			return nil, errors.New("unexpected signing method: " + token.Method.Alg())
		}
		return []byte(tokenSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithIssuer(TokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject: %v", ErrInvalidToken, err)
	}
	role, err := RoleFromString(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Identity{UserID: id, Role: role}, nil
}

func GetBearerToken(headers http.Header) (tokenString string, returnErr error) {
	authSlice, ok := headers["Authorization"]
	if !ok || len(authSlice) == 0 {
		return "", errors.New("authorization header missing or empty")
	}
	authHeaderVal := authSlice[0]
	if !strings.HasPrefix(strings.ToLower(authHeaderVal), "bearer ") {
		return "", errors.New("no token string found")
	}
	tokenElements := strings.SplitN(authHeaderVal, " ", 2)
	if len(tokenElements) != 2 || strings.TrimSpace(tokenElements[1]) == "" {
		return "", errors.New("bearer presented without token")
	}
	return strings.TrimSpace(tokenElements[1]), nil
}
