package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/providerdesk/providerdesk/manage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var bootstrapCommand = cobra.Command{
	Use:   "bootstrap",
	Short: "seeds the first super admin account",
	Long: `this command creates the initial super admin account,
	it refuses to run once an active super admin exists`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		mailer := mustResolveMailer()
		superAdminManager := manage.NewSuperAdminService(
			dataStore,
			TopLevelLogger.Named("super_admin_manager"),
			LoadedConfig,
			mailer,
			dispatcher,
		)

		existing, err := superAdminManager.List(cmd.Context(), 1, 1, "", "active")
		if err != nil {
			fmt.Printf("Unable to check for existing super admins: %s\r\n", err)
			os.Exit(1)
			return
		}
		if existing.Total > 0 {
			fmt.Println("An active super admin already exists, refusing to bootstrap.")
			os.Exit(1)
			return
		}

		email := LoadedConfig.Security.BootstrapEmail
		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Println("email?")
			in, err := reader.ReadString('\n')
			if err != nil {
				fmt.Printf("Unable to read email: %s", err)
				os.Exit(1)
				return
			}
			email = strings.Trim(in, " \t\r\n")
		}

		fmt.Println("full name?")
		name, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read full name: %s", err)
			os.Exit(1)
			return
		}
		name = strings.Trim(name, " \t\r\n")

		fmt.Println("password?")
		pwd, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Printf("Unable to read password: %s", err)
			os.Exit(1)
			return
		}
		for len(pwd) < LoadedConfig.Security.SelfServiceMinLength {
			fmt.Printf(
				"password needs to be at least %d long.\r\n",
				LoadedConfig.Security.SelfServiceMinLength,
			)
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}

		created, err := superAdminManager.Create(
			cmd.Context(),
			email,
			string(pwd),
			name,
			nil,
			"bootstrap",
		)
		if err != nil {
			fmt.Printf("Unable to create super admin: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Super admin created with id: %d \r\n", created.ID)
	},
}
