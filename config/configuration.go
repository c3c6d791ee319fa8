package config

import (
	"errors"
	"time"
)

// ServerConfiguration contains the http server settings
type ServerConfiguration struct {
	Port    int
	Address string
}

// SMTPConfiguration contains the email settings
type SMTPConfiguration struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	// DisplayName will be displayed as email sender
	DisplayName string `mapstructure:"display-name"`
	// Address is the sender address
	Address string
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
}

// SecurityConfiguration configures the account lockout and reset behaviour
type SecurityConfiguration struct {
	// MaxLoginAttempts is the number of consecutive failed logins
	// before an account gets locked
	MaxLoginAttempts int `mapstructure:"max-login-attempts"`
	// LockoutDuration is how long a tripped account stays locked
	LockoutDuration time.Duration `mapstructure:"lockout-duration"`
	// ResetTokenExpiry is the lifetime of a password reset token
	ResetTokenExpiry time.Duration `mapstructure:"reset-token-expiry"`
	// PasswordMinLength applies to the generic reset flow,
	// SelfServiceMinLength to the super-admin self-service flow and to
	// account creation - the two flows intentionally differ
	PasswordMinLength    int `mapstructure:"password-min-length"`
	SelfServiceMinLength int `mapstructure:"self-service-min-length"`
	// BootstrapEmail guards the one-time super admin seed
	BootstrapEmail string `mapstructure:"bootstrap-email"`
	// FrontendURL is used to build password reset links
	FrontendURL string `mapstructure:"frontend-url"`
}

// JWTConfiguration habours the bearer token settings
type JWTConfiguration struct {
	Algorithm          string        `mapstructure:"alg"`
	Issuer             string        `mapstructure:"iss"`
	Audience           []string      `mapstructure:"aud"`
	Expiry             time.Duration `mapstructure:"exp"`
	HMACSigningKey     string        `mapstructure:"hmac-signing-key"      json:"-"`
	HMACSigningKeyFile string        `mapstructure:"hmac-signing-key-file"`

	RSAPrivateKey string `mapstructure:"rsa-private-key" json:"-"`
	RSAPublicKey  string `mapstructure:"rsa-public-key"  json:"-"`

	RSAPrivateKeyFile string `mapstructure:"rsa-private-key-file"`
	RSAPublicKeyFile  string `mapstructure:"rsa-public-key-file"`
}

// CORSConfiguration very basic cors configuration for the SPA origin
type CORSConfiguration struct {
	AllowCredentials bool     `mapstructure:"allow-credentials"`
	AllowedMethods   []string `mapstructure:"allowed-methods"`
	AllowedOrigins   []string `mapstructure:"allowed-origins"`
}

// Configuration habours the entire providerdesk configuration
type Configuration struct {
	Server   *ServerConfiguration   `mapstructure:"server"`
	SMTP     *SMTPConfiguration     `mapstructure:"smtp"`
	Database *DatabaseConfiguration `mapstructure:"database"`
	Security *SecurityConfiguration `mapstructure:"security"`
	JWT      *JWTConfiguration      `mapstructure:"jwt"`
	CORS     *CORSConfiguration     `mapstructure:"cors"`
}

// Validate does some basic validation of the config file and tries to be helpful on missconfiguration
func (c *Configuration) Validate() error {
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	if c.SMTP == nil {
		return errors.New("no SMTP configuration found")
	}
	if c.Security == nil {
		return errors.New("no security configuration found")
	}
	if c.JWT == nil {
		return errors.New("no JWT configuration found")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
		if c.JWT.HMACSigningKey == "" && c.JWT.HMACSigningKeyFile == "" {
			return errors.New(
				"when using jwt.alg HS256, HS384, HS512 you need to define either hmac-signing-key or hmac-signing-key-file",
			)
		}
	case "RS256", "RS384", "RS512":
		if c.JWT.RSAPublicKey == "" && c.JWT.RSAPublicKeyFile == "" {
			return errors.New(
				"when using jwt.alg RS256, RS384, RS512 you need to define either rsa-public-key or rsa-public-key-file",
			)
		}
		if c.JWT.RSAPrivateKey == "" && c.JWT.RSAPrivateKeyFile == "" {
			return errors.New(
				"when using jwt.alg RS256, RS384, RS512 you need to define either rsa-private-key or rsa-private-key-file",
			)
		}
	}
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	if c.Security.MaxLoginAttempts <= 0 {
		return errors.New("security.max-login-attempts has to be positive")
	}
	return nil
}
