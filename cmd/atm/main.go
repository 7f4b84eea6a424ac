package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bankofray/atm/internal/config"
	"github.com/bankofray/atm/internal/database"
	"github.com/bankofray/atm/internal/handlers"
	"github.com/bankofray/atm/internal/messages"
	"github.com/bankofray/atm/internal/services"
	"github.com/spf13/viper"
)

const usage = `Usage: atm [-config file] [command]

Commands:
  run                    start an interactive ATM session (default)
  migrate                create the users and accounts tables
  delete-user <username> remove a user and their account
`

func main() {
	configPath := flag.String("config", "atm.yaml", "path to the config file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	closeLog := setupLogging(viper.GetString("log.file"))
	defer closeLog()

	command := flag.Arg(0)
	if command == "" {
		command = "run"
	}

	switch command {
	case "run":
		runSession()
	case "migrate":
		migrate()
	case "delete-user":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		deleteUser(flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		flag.Usage()
		os.Exit(2)
	}
}

// setupLogging sends log output to path so it stays off the terminal UI.
// "-" keeps stderr.
func setupLogging(path string) func() {
	if path == "" || path == "-" {
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Failed to open log file %s, logging to stderr: %v", path, err)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

// openLedger builds the ledger selected by db.driver. The returned func
// releases its connections.
func openLedger(ctx context.Context, hasher services.PasswordHasher) (services.Ledger, func()) {
	if database.GetConfig().Driver == database.DriverMemory {
		log.Println("[DB] using in-memory ledger, nothing will be persisted")
		return services.NewMemoryLedger(hasher), func() {}
	}

	db, cfg := database.InitDatabase()
	if err := database.EnsureSchema(ctx, db, cfg.Driver); err != nil {
		db.Close()
		log.Fatalf("Failed to prepare database: %v", err)
	}
	return services.NewLedgerService(db, cfg.Driver, hasher), func() { db.Close() }
}

func runSession() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hasher, err := services.NewPasswordHasher()
	if err != nil {
		log.Fatalf("Failed to configure password hashing: %v", err)
	}

	ledger, closeLedger := openLedger(ctx, hasher)
	redisClient := database.InitRedis()
	cleanup := func() {
		closeLedger()
		if redisClient != nil {
			redisClient.Close()
		}
	}
	defer cleanup()

	sessionConfig := config.LoadSessionConfig()
	throttle := services.NewLoginThrottle(redisClient, sessionConfig)
	handler := handlers.NewSessionHandler(ledger, hasher, throttle)
	out := messages.NewPresenter(os.Stdout, sessionConfig.Color)

	done := make(chan error, 1)
	go func() {
		done <- handler.Run(ctx, os.Stdin, out)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Session failed: %v", err)
			cleanup()
			os.Exit(1)
		}
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
		cancel()
		out.Show(messages.Goodbye)
		cleanup()
		os.Exit(130)
	}
}

func migrate() {
	if database.GetConfig().Driver == database.DriverMemory {
		fmt.Println("The in-memory ledger has no schema to migrate.")
		return
	}

	db, cfg := database.InitDatabase()
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db, cfg.Driver); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Printf("Schema ready (%s).\n", cfg.Driver)
}

func deleteUser(username string) {
	ctx := context.Background()

	hasher, err := services.NewPasswordHasher()
	if err != nil {
		log.Fatalf("Failed to configure password hashing: %v", err)
	}

	ledger, closeLedger := openLedger(ctx, hasher)
	defer closeLedger()

	err = ledger.DeleteUserAndAccount(ctx, username)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fmt.Fprintf(os.Stderr, "User %s does not exist.\n", username)
		closeLedger()
		os.Exit(1)
	case err != nil:
		log.Printf("Failed to delete user %s: %v", username, err)
		fmt.Fprintf(os.Stderr, "Failed to delete user %s.\n", username)
		closeLedger()
		os.Exit(1)
	}
	fmt.Printf("Deleted user %s and their account.\n", username)
}
