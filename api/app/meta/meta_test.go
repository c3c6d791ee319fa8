package meta

import (
	"net/http"
	"testing"
	"time"

	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/tokens"
	"github.com/steinfletcher/apitest"
	"go.uber.org/zap"
)

func testIssuer() *tokens.TokenIssuer {
	cfg := &config.JWTConfiguration{
		Algorithm:      "HS256",
		Issuer:         "providerdesk",
		Audience:       []string{"providerdesk-admin"},
		Expiry:         time.Hour,
		HMACSigningKey: "oTQViBZwcMuipZspTAsmqTbuvsDmRDyz",
	}
	return tokens.NewIssuer(zap.NewNop(), cfg)
}

func TestTokenConfigurationEndpoint(t *testing.T) {
	m := NewMetaRessource(zap.NewNop(), testIssuer())
	apitest.New().
		HandlerFunc(m.tokenConfiguration).
		Get("/token-configuration").
		Expect(t).
		Body(`{"issuer":"providerdesk","jwks_uri":"/.well-known/jwks","token_signing_alg":"HS256","audience":["providerdesk-admin"],"token_expiry_seconds":3600}`).
		Status(http.StatusOK).
		End()
}

func TestJWKSKeepsHMACSecret(t *testing.T) {
	m := NewMetaRessource(zap.NewNop(), testIssuer())
	apitest.New().
		HandlerFunc(m.jwks).
		Get("/jwks").
		Expect(t).
		Body(`{"keys":[]}`).
		Status(http.StatusOK).
		End()
}
