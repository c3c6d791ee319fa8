package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/providerdesk/providerdesk/cmd"
	"github.com/providerdesk/providerdesk/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("providerdesk %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()

	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.address", "")
	viper.SetDefault("smtp.enabled", false)
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.dsn", "providerdesk.db")
	viper.SetDefault("security.max-login-attempts", 5)
	viper.SetDefault("security.lockout-duration", "15m")
	viper.SetDefault("security.reset-token-expiry", "1h")
	viper.SetDefault("security.password-min-length", 6)
	viper.SetDefault("security.self-service-min-length", 8)
	viper.SetDefault("security.frontend-url", "http://localhost:5173")
	viper.SetDefault("jwt.alg", "HS256")
	viper.SetDefault("jwt.exp", "24h")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("PDESK_PORT", "server.port")
	bind("PDESK_ADDRESS", "server.address")

	bind("PDESK_SMTP_ENABLED", "smtp.enabled")
	bind("PDESK_SMTP_HOST", "smtp.host")
	bind("PDESK_SMTP_PORT", "smtp.port")
	bind("PDESK_SMTP_USERNAME", "smtp.username")
	bind("PDESK_SMTP_PASSWORD", "smtp.password")
	bind("PDESK_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("PDESK_SMTP_ADDRESS", "smtp.address")

	bind("PDESK_DATABASE_TYPE", "database.type")
	bind("PDESK_DATABASE_DSN", "database.dsn")

	bind("PDESK_SECURITY_MAX_LOGIN_ATTEMPTS", "security.max-login-attempts")
	bind("PDESK_SECURITY_LOCKOUT_DURATION", "security.lockout-duration")
	bind("PDESK_SECURITY_RESET_TOKEN_EXPIRY", "security.reset-token-expiry")
	bind("PDESK_SECURITY_PASSWORD_MIN_LENGTH", "security.password-min-length")
	bind("PDESK_SECURITY_SELF_SERVICE_MIN_LENGTH", "security.self-service-min-length")
	bind("PDESK_SECURITY_BOOTSTRAP_EMAIL", "security.bootstrap-email")
	bind("PDESK_SECURITY_FRONTEND_URL", "security.frontend-url")

	bind("PDESK_JWT_AUDIENCE", "jwt.aud")
	bind("PDESK_JWT_ISSUER", "jwt.iss")
	bind("PDESK_JWT_ALG", "jwt.alg")
	bind("PDESK_JWT_EXP", "jwt.exp")

	bind("PDESK_JWT_HMAC_SIGNING_KEY", "jwt.hmac-signing-key")
	bind("PDESK_JWT_HMAC_SIGNING_KEY_FILE", "jwt.hmac-signing-key-file")

	bind("PDESK_JWT_RSA_PRIVATE_KEY", "jwt.rsa-private-key")
	bind("PDESK_JWT_RSA_PRIVATE_KEY_FILE", "jwt.rsa-private-key-file")

	bind("PDESK_JWT_RSA_PUBLIC_KEY", "jwt.rsa-public-key")
	bind("PDESK_JWT_RSA_PUBLIC_KEY_FILE", "jwt.rsa-public-key-file")

	bind("PDESK_CORS_ALLOWED_ORIGINS", "cors.allowed-origins")
	bind("PDESK_CORS_ALLOWED_METHODS", "cors.allowed-methods")
	bind("PDESK_CORS_ALLOW_CREDENTIALS", "cors.allow-credentials")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", string(cmd.ConfigFileLocation)))
		viper.SetConfigFile(string(cmd.ConfigFileLocation))
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf
}
