package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/providerdesk/providerdesk/manage"
	"github.com/spf13/cobra"
)

var adminCommand = cobra.Command{
	Use:   "admin",
	Short: "admin user related commands",
}

func resolveAdminUserService() *manage.AdminUserService {
	dataStore := mustResolveUsableDataStore()
	dispatcher := bootstrapDispatcher(dataStore.Auditor())
	mailer := mustResolveMailer()
	return manage.NewAdminUserService(
		dataStore,
		TopLevelLogger.Named("admin_user_manager"),
		LoadedConfig,
		mailer,
		dispatcher,
	)
}

var listAdminsCommand = cobra.Command{
	Use:   "ls",
	Short: "lists the admin users",
	Run: func(cmd *cobra.Command, args []string) {
		service := resolveAdminUserService()
		page, err := service.List(cmd.Context(), 1, 100, "", "", "")
		if err != nil {
			fmt.Printf("Unable to list admin users: %s \r\n", err)
			os.Exit(1)
			return
		}
		entries, ok := page.Entries.([]*manage.AdminUserDTO)
		if !ok {
			fmt.Println("Unexpected listing payload")
			os.Exit(1)
			return
		}
		fmt.Printf("%d admin user(s) total\r\n", page.Total)
		for _, v := range entries {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\r\n", v.ID, v.Email, v.FullName, v.Role, v.Status)
		}
	},
}

var unlockAdminCommand = cobra.Command{
	Use:   "unlock [id]",
	Short: "lifts the lockout of an admin user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid id: %s \r\n", args[0])
			os.Exit(1)
			return
		}
		service := resolveAdminUserService()
		err = service.Unlock(cmd.Context(), id)
		if err != nil {
			fmt.Printf("Unable to unlock admin user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println("Admin user unlocked")
	},
}
