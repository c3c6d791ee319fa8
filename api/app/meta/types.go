package meta

import "net/http"

// tokenMetaData tells SPA and integration clients how bearer tokens
// are minted without them having to parse one first
type tokenMetaData struct {
	Issuer        string   `json:"issuer"`
	JWKSUri       string   `json:"jwks_uri"`
	SigningAlg    string   `json:"token_signing_alg"`
	SigningKeyID  string   `json:"token_signing_key_id,omitempty"`
	Audience      []string `json:"audience"`
	ExpirySeconds int      `json:"token_expiry_seconds"`
}

func (*tokenMetaData) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
