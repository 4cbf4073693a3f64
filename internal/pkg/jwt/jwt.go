package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the access token claims
type Claims struct {
	Auth      string `json:"auth,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	jwt.RegisteredClaims
}

// Decoded is the result of decoding a token.
// On ErrTokenExpired it is still returned so the subject can be logged.
type Decoded struct {
	Subject   string
	Auth      string
	UserEmail string
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 tokens with a key fixed at construction
type Codec struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// NewCodec decodes the base64 secret once and builds a Codec
func NewCodec(base64Secret string, validity time.Duration) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 256 bits, got %d", len(key)*8)
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive")
	}

	return &Codec{key: key, validity: validity, now: time.Now}, nil
}

// Validity returns the configured token lifetime
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Issue signs an access token carrying subject, the joined role claim and email
func (c *Codec) Issue(subject, auth, email string, issuedAt time.Time) (string, error) {
	claims := Claims{
		Auth:      auth,
		UserEmail: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// IssueRefresh signs a refresh token that carries only an expiry
func (c *Codec) IssueRefresh(issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Decode verifies the signature and expiry of a token.
// It returns ErrTokenInvalid for a bad signature or structure, and
// ErrTokenExpired together with the decoded claims for an expired token.
func (c *Codec) Decode(tokenString string) (*Decoded, error) {
	return c.decode(tokenString, c.parser())
}

// DecodeUnvalidated verifies only the signature, ignoring exp.
// The result must not be used for authorization.
func (c *Codec) DecodeUnvalidated(tokenString string) (*Decoded, error) {
	return c.decode(tokenString, c.parser(jwt.WithoutClaimsValidation()))
}

func (c *Codec) parser(opts ...jwt.ParserOption) *jwt.Parser {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	return jwt.NewParser(opts...)
}

func (c *Codec) decode(tokenString string, parser *jwt.Parser) (*Decoded, error) {
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.key, nil
	})

	if err != nil {
		// The parser verifies the signature before claims, so an expiry
		// error means the token itself is genuine.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return toDecoded(claims), ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	return toDecoded(claims), nil
}

func toDecoded(claims *Claims) *Decoded {
	d := &Decoded{
		Subject:   claims.Subject,
		Auth:      claims.Auth,
		UserEmail: claims.UserEmail,
	}
	if claims.ExpiresAt != nil {
		d.ExpiresAt = claims.ExpiresAt.Time
	}
	return d
}
