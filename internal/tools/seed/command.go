package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"
	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/tools/common"
	"github.com/sandeepkv93/credential-vault-backend/internal/tools/ui"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

const toolName = "seed"

var errMemoryDriver = errors.New("STORE_DRIVER=memory has nothing to seed; use sqlite or postgres")

type options struct {
	envFile string
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "seed", Short: "Demo data and classifier tooling"}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts), newSimulateCommand(opts))
	return cmd
}

func newApplyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Migrate the store and insert missing demo learners and certificates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts, "apply", func(ctx context.Context) ([]string, error) {
				_, db, err := loadConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = database.Close(db) }()
				if err := database.Migrate(db); err != nil {
					return nil, fmt.Errorf("migrate: %w", err)
				}
				report, err := database.SeedDemoData(ctx, repository.NewUserRepository(db), repository.NewCertificateRepository(db))
				if err != nil {
					return nil, err
				}
				if report.Noop {
					return []string{"demo data already present"}, nil
				}
				return []string{
					fmt.Sprintf("created %d users", report.CreatedUsers),
					fmt.Sprintf("created %d certificates", report.CreatedCertificates),
				}, nil
			})
		},
	}
}

func newDryRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show which demo records apply would insert",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts, "dry-run", func(ctx context.Context) ([]string, error) {
				_, db, err := loadConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = database.Close(db) }()
				if err := database.Migrate(db); err != nil {
					return nil, fmt.Errorf("migrate: %w", err)
				}
				return planSeed(ctx, repository.NewUserRepository(db), repository.NewCertificateRepository(db))
			})
		},
	}
}

func newSimulateCommand(opts *options) *cobra.Command {
	var (
		runs  int
		seed1 uint64
		seed2 uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the classifier against simulated evidence and report the status mix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(opts, "simulate", func(ctx context.Context) ([]string, error) {
				if err := common.LoadEnvFile(opts.envFile); err != nil {
					return nil, err
				}
				cfg, err := config.Load()
				if err != nil {
					return nil, err
				}
				report, err := simulate(ctx, verification.Probabilities{
					QRCode:     cfg.VerificationQRProbability,
					Blockchain: cfg.VerificationBlockchainProbability,
					API:        cfg.VerificationAPIProbability,
				}, runs, seed1, seed2)
				if err != nil {
					return nil, err
				}
				return report.lines(), nil
			})
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 1000, "number of classifications to simulate")
	cmd.Flags().Uint64Var(&seed1, "seed", 1, "first PCG seed word")
	cmd.Flags().Uint64Var(&seed2, "seed2", 2, "second PCG seed word")
	return cmd
}

// execute runs fn, records the tool metrics and exits with status 3 on failure.
func execute(opts *options, command string, fn func(context.Context) ([]string, error)) error {
	title := toolName + " " + command
	start := time.Now()
	details, err := run(opts, title, fn)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ctx := context.Background()
	observability.RecordToolCommandRun(ctx, toolName, command, outcome)
	observability.RecordToolCommandDuration(ctx, toolName, command, outcome, time.Since(start))
	if opts.ci {
		common.PrintCIResult(err == nil, title, details, err)
	}
	if err != nil {
		os.Exit(3)
	}
	return nil
}

func run(opts *options, title string, fn func(context.Context) ([]string, error)) ([]string, error) {
	if opts.ci {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return fn(ctx)
	}
	return ui.Run(title, fn)
}

func loadConfigDB(envFile string) (*config.Config, *gorm.DB, error) {
	if err := common.LoadEnvFile(envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if errors.Is(err, database.ErrNoDatabase) {
		return nil, nil, errMemoryDriver
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
