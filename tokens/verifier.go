package tokens

import (
	"context"
	"errors"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/providerdesk/providerdesk/db"
	"go.uber.org/zap"
)

// Fetcher loads the account behind a token for the freshness read
type Fetcher interface {
	AccountByID(ctx context.Context, kind db.AccountKind, id int) (*db.AccountData, error)
}

func NewTokenVerifier(log *zap.Logger,
	issuer *TokenIssuer,
	loader Fetcher) *TokenVerifier {
	return &TokenVerifier{
		log:    log,
		issuer: issuer,
		loader: loader,
	}
}

type TokenVerifier struct {
	log    *zap.Logger
	issuer *TokenIssuer
	loader Fetcher
}

// ParseAndValidateAccessToken parses and validates the jwt token against
// the supplied claims, does not check the database by itself
func (t *TokenVerifier) ParseAndValidateAccessToken(accessToken string) (jwt.Token, error) {
	if len(t.issuer.parseOptions) == 0 {
		return nil, errors.New("no valid JWT parsing options")
	}
	token, err := jwt.Parse([]byte(accessToken), t.issuer.parseOptions...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired()):
			return nil, ErrTokenExpired
		default:
			t.log.Error("unexpected access token parsing error", zap.Error(err))
			return nil, ErrInvalidToken
		}
	}
	return token, nil
}

// ValidateAccessTokenDetails validates an access token and re-reads the
// account behind it, a token of a deleted or deactivated account is
// refused no matter how much lifetime it has left
func (t *TokenVerifier) ValidateAccessTokenDetails(
	ctx context.Context,
	accessToken string,
) (*CommonToken, *db.AccountData, error) {
	token, err := t.ParseAndValidateAccessToken(accessToken)
	if err != nil {
		return nil, nil, err
	}
	common := commonTokenFromJWT(token)
	id, err := common.AccountID()
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	kind := db.KindAdminUser
	if common.UserType() == string(db.KindSuperAdmin) {
		kind = db.KindSuperAdmin
	}
	account, err := t.loader.AccountByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, ErrAccountNotUsable
		}
		return nil, nil, err
	}
	if account.Status != "active" {
		return nil, nil, ErrAccountNotUsable
	}
	return common, account, nil
}
