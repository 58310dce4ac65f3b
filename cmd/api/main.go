package main

import (
	"os"
	_ "time/tzdata" // site timezone in slim images

	_ "clepsydra-backend/docs" // Important for Swagger

	"github.com/spf13/cobra"
)

// @title           Clepsydra Contact API
// @version         1.0
// @description     Contact form intake for the Clepsydra Technologies website.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clepsydra-api",
		Short:        "Contact form backend for the Clepsydra Technologies website",
		SilenceUsage: true,
		// Bare invocation serves, as the container entrypoint expects
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}
