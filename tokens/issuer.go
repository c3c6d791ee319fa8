package tokens

import (
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	b64 "encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/providerdesk/providerdesk/config"
	"go.uber.org/zap"
)

const (
	//ClaimEmail is the claim storing the email
	ClaimEmail = "email"
	//ClaimUserType is the claim discriminating super admins from admin users
	ClaimUserType = "userType"
	//ClaimRole is the claim storing the admin user role
	ClaimRole = "role"

	algHS256 = "HS256"
	algHS384 = "HS384"
	algHS512 = "HS512"

	algRS256 = "RS256"
	algRS384 = "RS384"
	algRS512 = "RS512"
)

type TokenIssuer struct {
	log          *zap.Logger
	privateKey   jwk.Key
	publicKey    jwk.Key
	alg          jwa.SignatureAlgorithm
	aud          []string
	expiry       time.Duration
	iss          string
	parseOptions []jwt.ParseOption
	kid          string
}

func checkForWeakHMAC(log *zap.Logger, alg string, key string) {
	if alg == algHS256 && len(key) <= 31 {
		log.Warn("weak secret, consider chossing another secret")
	}
	if alg == algHS384 && len(key) <= 39 {
		log.Warn("weak secret, consider chossing another secret")
	}
	if alg == algHS512 && len(key) <= 57 {
		log.Warn("weak secret, consider chossing another secret")
	}
}

func parseRSAPrivateKey(key []byte) (*rsa.PrivateKey, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("supplied private key is empty")
	}
	pemLoaded, _ := pem.Decode(key)
	if pemLoaded == nil || pemLoaded.Type != "RSA PRIVATE KEY" {
		return nil, errors.New("supplied private key is not a RSA private key")
	}
	var err error
	var parsedKey interface{}
	if parsedKey, err = x509.ParsePKCS1PrivateKey(pemLoaded.Bytes); err != nil {
		if parsedKey, err = x509.ParsePKCS8PrivateKey(pemLoaded.Bytes); err != nil {
			return nil, errors.New("could not parse RSA private key")
		}
	}

	privateKey, ok := parsedKey.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("could not parse RSA private key")
	}
	return privateKey, nil
}

func parseRSAPublicKey(key []byte) (*rsa.PublicKey, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("supplied public key is empty")
	}
	pemLoaded, _ := pem.Decode(key)
	if pemLoaded == nil {
		return nil, errors.New("could not parse RSA public key")
	}
	if pemLoaded.Type == "RSA PUBLIC KEY" {
		parsedKey, err := x509.ParsePKCS1PublicKey(pemLoaded.Bytes)
		if err != nil {
			return nil, errors.New("could not parse RSA public key")
		}
		return parsedKey, nil
	}
	if pemLoaded.Type == "PUBLIC KEY" {
		parsedKey, err := x509.ParsePKIXPublicKey(pemLoaded.Bytes)
		if err != nil {
			return nil, errors.New("could not parse RSA public key")
		}
		pubKey, ok := parsedKey.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("could not parse RSA public key")
		}
		return pubKey, nil
	}
	return nil, fmt.Errorf("supplied public key is not a public key, got %s", pemLoaded.Type)
}

func NewIssuer(
	log *zap.Logger,
	cfg *config.JWTConfiguration,
) *TokenIssuer {
	var privateKeyJwk jwk.Key
	var publicKeyJwk jwk.Key
	kid := ""
	options := make([]jwt.ParseOption, 0)
	options = append(options, jwt.WithValidate(true))
	//okay this is probably the only reason and place to panic...
	switch cfg.Algorithm {
	case algHS256, algHS384, algHS512:
		privateKeyJwk, options = loadHMACKey(cfg, log, options)
	case algRS256, algRS384, algRS512:
		var err error
		var privateKey *rsa.PrivateKey
		var pubParsed *rsa.PublicKey
		kid, privateKey, pubParsed = loadRSAKeys(cfg, log)
		privateKeyJwk, err = jwk.FromRaw(privateKey)
		if err != nil {
			log.Error("unable to process private key")
			panic("unable to process private key")
		}
		publicKeyJwk, err = jwk.FromRaw(pubParsed)
		if err != nil {
			log.Error("unable to process public key")
			panic("unable to process public key")
		}
		_ = publicKeyJwk.Set("alg", cfg.Algorithm)
		_ = publicKeyJwk.Set("use", "sig")
		_ = publicKeyJwk.Set("kid", kid)
		_ = privateKeyJwk.Set("kid", kid)
		sha, err := publicKeyJwk.Thumbprint(crypto.SHA1)
		if err == nil {
			_ = publicKeyJwk.Set("x5t", b64.StdEncoding.EncodeToString(sha))
		}

		options = append(options, jwt.WithKey(jwa.SignatureAlgorithm(cfg.Algorithm), publicKeyJwk))

	default:
		log.Error("invalid jwt.alg defined. Possible values: HS256,HS384,HS512,RS256,RS384,RS512")
		panic("invalid jwt.alg defined. Possible values: HS256,HS384,HS512,RS256,RS384,RS512")
	}
	_ = privateKeyJwk.Set("alg", cfg.Algorithm)
	_ = privateKeyJwk.Set("use", "sig")
	sha, err := privateKeyJwk.Thumbprint(crypto.SHA1)
	if err == nil {
		_ = privateKeyJwk.Set("x5t", b64.StdEncoding.EncodeToString(sha))
	}
	return &TokenIssuer{
		log:          log,
		alg:          jwa.SignatureAlgorithm(cfg.Algorithm),
		privateKey:   privateKeyJwk,
		aud:          cfg.Audience,
		expiry:       cfg.Expiry,
		iss:          cfg.Issuer,
		parseOptions: options,
		publicKey:    publicKeyJwk,
		kid:          kid,
	}
}

func loadRSAKeys(
	cfg *config.JWTConfiguration,
	log *zap.Logger,
) (string, *rsa.PrivateKey, *rsa.PublicKey) {
	var privateKey []byte
	var publicKey []byte
	if len(cfg.RSAPrivateKey) > 0 {
		privateKey = []byte(cfg.RSAPrivateKey)
	} else if len(cfg.RSAPrivateKeyFile) > 0 {
		content, err := os.ReadFile(cfg.RSAPrivateKeyFile)
		if err != nil {
			log.Error("could not load key file", zap.String("file", cfg.RSAPrivateKeyFile), zap.Error(err))
			panic("could not load key file")
		}
		if len(content) == 0 {
			log.Error("read empty private key file", zap.String("file", cfg.RSAPrivateKeyFile))
			panic("read empty private key file")
		}
		privateKey = content
	} else {
		log.Error("no RSA private key defined, either set jwt.rsa-private-key or jwt.rsa-private-key-file")
		panic("no RSA private key defined")
	}
	parsedPrivate, err := parseRSAPrivateKey(privateKey)
	if err != nil {
		log.Error("unable to process suplied private key", zap.Error(err))
		panic("unable to process suplied private key")
	}
	if len(cfg.RSAPublicKey) > 0 {
		publicKey = []byte(cfg.RSAPublicKey)
	} else if len(cfg.RSAPublicKeyFile) > 0 {
		content, err := os.ReadFile(cfg.RSAPublicKeyFile)
		if err != nil {
			log.Error("could not load key file", zap.String("file", cfg.RSAPublicKeyFile), zap.Error(err))
			panic("could not load key file")
		}
		publicKey = content
	} else {
		log.Error("no RSA public key defined, either set jwt.rsa-public-key or jwt.rsa-public-key-file")
		panic("no RSA public key defined")
	}
	kid := fmt.Sprintf("%x", crc32.Checksum(publicKey, crc32.IEEETable))
	pubParsed, err := parseRSAPublicKey(publicKey)
	if err != nil {
		log.Error("unable to process supllied public key", zap.Error(err))
		panic("invalid public key")
	}
	parsedPrivate.PublicKey = *pubParsed
	return kid, parsedPrivate, pubParsed
}

func loadHMACKey(
	cfg *config.JWTConfiguration,
	log *zap.Logger,
	options []jwt.ParseOption) (jwk.Key, []jwt.ParseOption) {
	var privateKey []byte
	//direct key takes precende
	if len(cfg.HMACSigningKey) > 0 {
		checkForWeakHMAC(log, cfg.Algorithm, cfg.HMACSigningKey)
		privateKey = []byte(cfg.HMACSigningKey)
	} else if len(cfg.HMACSigningKeyFile) > 0 {
		content, err := os.ReadFile(cfg.HMACSigningKeyFile)
		if err != nil {
			log.Error("could not load key file", zap.String("file", cfg.HMACSigningKeyFile), zap.Error(err))
			panic("could not load key file")
		}
		checkForWeakHMAC(log, cfg.Algorithm, string(content))
		privateKey = content
	} else {
		log.Error("no HMAC key defined, either set jwt.hmac-signing-key or jwt.hmac-signing-key-file")
		panic("no HMAC key defined")
	}
	if len(privateKey) > 0 {
		privateKeyJwk, err := jwk.FromRaw(privateKey)
		if err != nil {
			log.Error("unable to process symetric key", zap.Error(err))
			panic("unable to process symetric key")
		}
		options = append(
			options,
			jwt.WithKey(jwa.SignatureAlgorithm(cfg.Algorithm), privateKeyJwk),
		)
		return privateKeyJwk, options
	}
	log.Error("no HMAC key defined, either set jwt.hmac-signing-key or jwt.hmac-signing-key-file")
	panic("no valid key found")
}

func (t *TokenIssuer) Audience() []string {
	return t.aud
}

func (t *TokenIssuer) Issuer() string {
	return t.iss
}

func (t *TokenIssuer) Expiry() time.Duration {
	return t.expiry
}

// IssueAccessToken issues a bearer token for a signed in staff account,
// role is only set for admin users
func (t *TokenIssuer) IssueAccessToken(
	accountID int,
	email string,
	userType string,
	role string,
) (jwt.Token, error) {
	tokenBuilder := jwt.NewBuilder()
	tokenBuilder.
		Audience(t.aud).
		IssuedAt(time.Now().UTC()).
		Expiration(time.Now().UTC().Add(t.expiry)).
		Subject(strconv.Itoa(accountID)).
		Issuer(t.iss).
		Claim(ClaimEmail, email).
		Claim(ClaimUserType, userType)
	if role != "" {
		tokenBuilder.Claim(ClaimRole, role)
	}
	return tokenBuilder.Build()
}

func (t *TokenIssuer) Sign(token jwt.Token) ([]byte, error) {
	return jwt.Sign(token, jwt.WithKey(t.alg, t.privateKey))
}

func (t *TokenIssuer) Alg() string {
	return string(t.alg)
}

func (t *TokenIssuer) PublicKey() jwk.Key {
	return t.publicKey
}

// KeyID is empty for the HMAC algorithms, those keys are never published
func (t *TokenIssuer) KeyID() string {
	return t.kid
}

// AsPublicOnlyJWKSet builds the key set served on the .well-known
// endpoint, a shared HMAC secret yields an empty set
func (t *TokenIssuer) AsPublicOnlyJWKSet() (jwk.Set, error) {
	switch t.Alg() {
	case algHS256, algHS384, algHS512:
		set := jwk.NewSet()
		return set, nil
	case algRS256, algRS384, algRS512:
		set := jwk.NewSet()
		key, err := t.PublicKey().PublicKey()
		if err != nil {
			return nil, err
		}
		_ = set.AddKey(key)
		return set, nil
	}
	return nil, errors.New("unknown algorithm")
}
