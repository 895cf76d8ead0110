package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plsfundme/portal/internal/config"
	"github.com/plsfundme/portal/internal/model"
)

const defaultDisplayName = "User"

var (
	ErrMalformed = errors.New("malformed credential token")
	ErrExpired   = errors.New("credential token expired")
)

// Claims are the parts of a credential token the portal reads.
type Claims struct {
	Username  string
	Subject   string
	Role      model.Role
	ExpiresAt time.Time
}

// DisplayName prefers the username claim, then the subject, then a
// placeholder, so it is never empty.
func (c *Claims) DisplayName() string {
	if c.Username != "" {
		return c.Username
	}
	if c.Subject != "" {
		return c.Subject
	}
	return defaultDisplayName
}

// Decoder turns a raw credential token into Claims. Without a secret it only
// checks structure, as a browser would; with one it also verifies the HS256
// signature.
type Decoder struct {
	secret []byte
	parser *jwt.Parser
	now    func() time.Time
}

func NewDecoder(cfg *config.Config) *Decoder {
	return newDecoder([]byte(cfg.API.JWTSecret), time.Now)
}

func newDecoder(secret []byte, now func() time.Time) *Decoder {
	return &Decoder{
		secret: secret,
		// expiry is compared against d.now below, not by the parser
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: now,
	}
}

func (d *Decoder) Verifies() bool {
	return len(d.secret) > 0
}

func (d *Decoder) Decode(raw string) (*Claims, error) {
	mc := jwt.MapClaims{}

	var err error
	if d.Verifies() {
		_, err = d.parser.ParseWithClaims(raw, mc, func(*jwt.Token) (interface{}, error) {
			return d.secret, nil
		})
	} else {
		_, _, err = d.parser.ParseUnverified(raw, mc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// a token without exp cannot be shown to be unexpired
	if exp == nil {
		return nil, fmt.Errorf("%w: no exp claim", ErrExpired)
	}
	if !exp.Time.After(d.now()) {
		return nil, ErrExpired
	}

	return &Claims{
		Username:  stringClaim(mc["username"]),
		Subject:   subjectClaim(mc["sub"]),
		Role:      model.Role(stringClaim(mc["role"])),
		ExpiresAt: exp.Time,
	}, nil
}

func stringClaim(v any) string {
	s, _ := v.(string)
	return s
}

// subjectClaim accepts a plain subject or the API's {"id": ...} identity.
func subjectClaim(v any) string {
	switch sub := v.(type) {
	case string:
		return sub
	case map[string]any:
		switch id := sub["id"].(type) {
		case string:
			return id
		case float64:
			return fmt.Sprintf("%.0f", id)
		}
	}
	return ""
}
