package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zerobite",
		Short: "ZeroBite API Server",
		Long:  `ZeroBite is a kitchen inventory and food waste prevention service with donation listings, recipe suggestions and dietary preferences.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
