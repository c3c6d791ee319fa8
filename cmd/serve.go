package cmd

import (
	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/api"
	"github.com/providerdesk/providerdesk/manage"
	"github.com/providerdesk/providerdesk/tokens"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanna shift that somewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()

		//setup token issuer
		issuer := tokens.NewIssuer(TopLevelLogger.Named("token_issuer"), LoadedConfig.JWT)

		//setup mailer
		mailer := mustResolveMailer()

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		//setup management services
		adminUserManager := manage.NewAdminUserService(dataStore, TopLevelLogger.Named("admin_user_manager"), LoadedConfig, mailer, dispatcher)
		superAdminManager := manage.NewSuperAdminService(dataStore, TopLevelLogger.Named("super_admin_manager"), LoadedConfig, mailer, dispatcher)
		doctorManager := manage.NewDoctorService(dataStore, TopLevelLogger.Named("doctor_manager"), LoadedConfig, dispatcher)
		clinicManager := manage.NewClinicService(dataStore, TopLevelLogger.Named("clinic_manager"), LoadedConfig, dispatcher)
		endUserManager := manage.NewEndUserService(dataStore, TopLevelLogger.Named("end_user_manager"))
		analyticsManager := manage.NewAnalyticsService(dataStore, TopLevelLogger.Named("analytics_manager"))

		//setup business services
		signinService := account.NewSigninService(dataStore, TopLevelLogger.Named("signin_service"), LoadedConfig.Security, dispatcher)
		recoveryService := account.NewRecoveryService(dataStore, TopLevelLogger.Named("recovery_service"), LoadedConfig.Security, mailer, dispatcher)

		//setup token verifier
		verifier := tokens.NewTokenVerifier(TopLevelLogger.Named("token_verifier"), issuer, dataStore)

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			issuer,
			verifier,
			signinService,
			recoveryService,
			adminUserManager,
			superAdminManager,
			doctorManager,
			clinicManager,
			endUserManager,
			analyticsManager,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		err = server.Start()
		if err != nil {
			TopLevelLogger.Fatal("Server stopped with error", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}

func init() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("log_level", "debug")
}
