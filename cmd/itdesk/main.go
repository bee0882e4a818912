package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/itops-inc/itdesk/internal/interfaces/cli/migrate"
	"github.com/itops-inc/itdesk/internal/interfaces/cli/server"
	"github.com/itops-inc/itdesk/internal/shared/constants"
)

//go:generate swag init -g cmd/itdesk/main.go -d ../../ -o ../../docs --parseInternal

// @title itdesk API
// @version 1.0
// @description IT support tickets and mailbox requests.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:     "itdesk",
		Short:   "IT desk - ticket and email provisioning API",
		Long:    `itdesk serves the internal IT ticketing API and manages its database schema.`,
		Version: constants.Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
