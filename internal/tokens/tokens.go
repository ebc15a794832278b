package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/staffdir/staffdir/internal/config"
	"github.com/staffdir/staffdir/internal/users"
	"github.com/staffdir/staffdir/pkg/middleware"
)

// GenerateAccessToken creates a signed HS256 access token for the user.
// The role claim is what the admin gate checks downstream.
func GenerateAccessToken(cfg *config.Config, u *users.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verifier validates access tokens against the shared secret. It satisfies
// middleware.Verifier so handlers stay decoupled from the token format.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the raw token (signature + expiry). Only HS256
// is accepted; alg=none and asymmetric confusion attempts fail here.
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	return &accessToken{claims: claims}, nil
}

type accessToken struct {
	claims jwt.MapClaims
}

func (t *accessToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
