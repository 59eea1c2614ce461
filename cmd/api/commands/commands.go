package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/adapters/repository"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/server"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/storage"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the ZeroBite API server",
		Long:  "Start the ZeroBite API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and list users in the document store",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			if username == "" || password == "" {
				log.Fatal("Username and password are required")
			}

			createUser(username, password)
		},
	}

	createUserCmd.Flags().String("username", "", "Username (required)")
	createUserCmd.Flags().String("password", "", "Password (required)")

	listUsersCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers()
		},
	}

	userCmd.AddCommand(createUserCmd)
	userCmd.AddCommand(listUsersCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print ZeroBite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ZeroBite API v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to open document store", "error", err)
	}

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting ZeroBite API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", store.Path(),
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

func createUser(username, password string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	userRepo := repository.NewUserRepository(store)

	if err := userRepo.Create(context.Background(), username, password); err != nil {
		if errors.Is(err, entities.ErrUserExists) {
			log.Fatalf("User %q already exists", username)
		}
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Store: %s\n", store.Path())
}

func listUsers() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	userRepo := repository.NewUserRepository(store)

	usernames, err := userRepo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	if len(usernames) == 0 {
		fmt.Println("No users registered")
		return
	}

	for _, username := range usernames {
		fmt.Println(username)
	}
}
