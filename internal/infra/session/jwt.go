package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bryanwahyu/scamshield/internal/domain/users"
)

// Claims carried by a demo session token.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// JWTIssuer signs and validates HS256 session tokens.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer buat issuer baru; secret wajib diisi
func NewJWTIssuer(secret, issuer string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue implements users.SessionIssuer.
func (j *JWTIssuer) Issue(u users.User) (users.Session, error) {
	now := j.now()
	exp := now.Add(j.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   u.Email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Name: u.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return users.Session{}, fmt.Errorf("signing session token: %w", err)
	}
	return users.Session{Token: signed, ExpiresAt: exp.UTC(), User: u}, nil
}

// Parse implements users.SessionIssuer. Any failure maps to users.ErrInvalidSession.
func (j *JWTIssuer) Parse(token string) (users.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithIssuer(j.issuer))
	if err != nil || !parsed.Valid {
		return users.User{}, fmt.Errorf("%w: %v", users.ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return users.User{}, users.ErrInvalidSession
	}
	return users.User{Email: claims.Subject, Name: claims.Name}, nil
}
