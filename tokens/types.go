package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	// ErrInvalidToken indicates the token or an entity behind it is not usable
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the tokens lifetime has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrAccountNotUsable indicates the account behind an otherwise valid
	// token is gone or no longer active
	ErrAccountNotUsable = errors.New("account behind token is not usable")
)

// CommonToken is the parsed view of a bearer token
type CommonToken struct {
	audience   []string
	issuedAt   time.Time
	expiration time.Time
	subject    string
	issuer     string
	email      string
	userType   string
	role       string
}

func (c *CommonToken) Audience() []string {
	return c.audience
}

func (c *CommonToken) IssuedAt() time.Time {
	return c.issuedAt
}

func (c *CommonToken) Expiration() time.Time {
	return c.expiration
}

func (c *CommonToken) Subject() string {
	return c.subject
}

// AccountID is the numeric form of the subject claim
func (c *CommonToken) AccountID() (int, error) {
	return strconv.Atoi(c.subject)
}

func (c *CommonToken) Issuer() string {
	return c.issuer
}

func (c *CommonToken) Email() string {
	return c.email
}

func (c *CommonToken) UserType() string {
	return c.userType
}

func (c *CommonToken) Role() string {
	return c.role
}

func commonTokenFromJWT(token jwt.Token) *CommonToken {
	t := &CommonToken{
		issuedAt:   token.IssuedAt(),
		audience:   token.Audience(),
		expiration: token.Expiration(),
		subject:    token.Subject(),
		issuer:     token.Issuer(),
	}
	if email, ok := token.Get(ClaimEmail); ok {
		t.email = email.(string)
	}
	if userType, ok := token.Get(ClaimUserType); ok {
		t.userType = userType.(string)
	}
	if role, ok := token.Get(ClaimRole); ok {
		t.role = role.(string)
	}
	return t
}
