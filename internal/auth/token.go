package auth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the payload of an access token.
type Claims struct {
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Signer mints HS256 access tokens.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewSigner(secret, issuer string) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Sign returns a token for email carrying roles, valid for ttl.
func (s *Signer) Sign(email, name string, roles []string, ttl time.Duration) (string, error) {
	if email == "" {
		return "", errors.New("auth: email is required")
	}
	now := s.now()
	claims := Claims{
		Email: email,
		Name:  name,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verifier checks access tokens and resolves the caller's roles.
type Verifier struct {
	secret []byte
	issuer string
	admins map[string]bool
}

// NewVerifier accepts tokens signed with secret by issuer. Callers whose
// e-mail is in adminEmails hold ROLE_ADMIN regardless of their token.
func NewVerifier(secret, issuer string, adminEmails []string) *Verifier {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, admins: admins}
}

// Verify validates tokenString and returns the principal it names.
// Every valid token grants ROLE_USER.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("auth: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, errors.New("auth: invalid token")
	}
	if !claims.VerifyIssuer(v.issuer, true) {
		return Principal{}, fmt.Errorf("auth: unexpected issuer %q", claims.Issuer)
	}
	if claims.Email == "" {
		return Principal{}, errors.New("auth: missing email claim")
	}

	roles := []string{RoleUser}
	for _, r := range claims.Roles {
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if v.admins[strings.ToLower(claims.Email)] && !slices.Contains(roles, RoleAdmin) {
		roles = append(roles, RoleAdmin)
	}

	return Principal{Email: claims.Email, Name: claims.Name, Roles: roles}, nil
}
