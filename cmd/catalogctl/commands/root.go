package commands

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"go-catalog-ws/internal/config"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/service"
	"go-catalog-ws/internal/telemetry"
	"go-catalog-ws/internal/ws"
	"go-catalog-ws/pkg/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace/noop"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Maintenance commands for the product catalog",
	Long: `catalogctl runs maintenance tasks against the product catalog database:
schema migration, fixture seeding, purging, and issuing API tokens.

Connection settings come from the same environment (.env) as the API server;
--db overrides DATABASE_URL.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && verbose {
			log.Println("Warning: .env file not found")
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(migrateCmd, seedCmd, purgeCmd, tokenCmd)
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if verbose {
		cfg.Database.LogLevel = "info"
		cfg.Server.LogLevel = "debug"
	} else {
		cfg.Database.LogLevel = "silent"
	}
	return cfg
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// discardNotifier drops catalog events; nobody listens to a CLI run
type discardNotifier struct{}

func (discardNotifier) Publish(ws.Event) {}

func newProductService() (service.ProductService, *slog.Logger, error) {
	cfg := loadConfig()
	logger := telemetry.NewLogger(os.Stderr, cfg.Server.LogLevel, "catalogctl", cfg.OTLP.Environment)

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewProductService(
		repository.NewProductRepo(db),
		discardNotifier{},
		logger,
		noop.NewTracerProvider().Tracer("catalogctl"),
		telemetry.NewMetrics(),
	)
	return svc, logger, nil
}
