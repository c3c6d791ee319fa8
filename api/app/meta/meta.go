package meta

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/tokens"
	"go.uber.org/zap"
)

// MetaRessource contains the .well-known endpoints
type MetaRessource struct {
	log    *zap.Logger
	issuer *tokens.TokenIssuer
}

func (m *MetaRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/token-configuration", m.tokenConfiguration)
	r.Get("/jwks", m.jwks)
	return r
}

// jwks publishes the verification keys, for the HMAC algorithms the
// set is empty because the secret must never leave the server
func (m *MetaRessource) jwks(w http.ResponseWriter, _ *http.Request) {
	set, err := m.issuer.AsPublicOnlyJWKSet()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	b, err := json.Marshal(set)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
}

func (m *MetaRessource) tokenConfiguration(w http.ResponseWriter, r *http.Request) {
	doc := &tokenMetaData{
		Issuer:        m.issuer.Issuer(),
		JWKSUri:       "/.well-known/jwks",
		SigningAlg:    m.issuer.Alg(),
		SigningKeyID:  m.issuer.KeyID(),
		Audience:      m.issuer.Audience(),
		ExpirySeconds: int(m.issuer.Expiry().Seconds()),
	}
	err := render.Render(w, r, doc)
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func NewMetaRessource(
	log *zap.Logger,
	issuer *tokens.TokenIssuer,
) *MetaRessource {
	return &MetaRessource{log: log, issuer: issuer}
}
