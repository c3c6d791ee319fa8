package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/providerdesk/providerdesk/manage"
	"github.com/spf13/cobra"
)

var superAdminCommand = cobra.Command{
	Use:   "superadmin",
	Short: "super admin related commands",
}

func resolveSuperAdminService() *manage.SuperAdminService {
	dataStore := mustResolveUsableDataStore()
	dispatcher := bootstrapDispatcher(dataStore.Auditor())
	mailer := mustResolveMailer()
	return manage.NewSuperAdminService(
		dataStore,
		TopLevelLogger.Named("super_admin_manager"),
		LoadedConfig,
		mailer,
		dispatcher,
	)
}

var listSuperAdminsCommand = cobra.Command{
	Use:   "ls",
	Short: "lists the super admins",
	Run: func(cmd *cobra.Command, args []string) {
		service := resolveSuperAdminService()
		page, err := service.List(cmd.Context(), 1, 100, "", "")
		if err != nil {
			fmt.Printf("Unable to list super admins: %s \r\n", err)
			os.Exit(1)
			return
		}
		entries, ok := page.Entries.([]*manage.SuperAdminDTO)
		if !ok {
			fmt.Println("Unexpected listing payload")
			os.Exit(1)
			return
		}
		fmt.Printf("%d super admin(s) total\r\n", page.Total)
		for _, v := range entries {
			fmt.Printf("%d\t%s\t%s\t%s\r\n", v.ID, v.Email, v.FullName, v.Status)
		}
	},
}

var unlockSuperAdminCommand = cobra.Command{
	Use:   "unlock [id]",
	Short: "lifts the lockout of a super admin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid id: %s \r\n", args[0])
			os.Exit(1)
			return
		}
		service := resolveSuperAdminService()
		err = service.Unlock(cmd.Context(), id)
		if err != nil {
			fmt.Printf("Unable to unlock super admin: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println("Super admin unlocked")
	},
}
