package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hrnet/internal/config"
	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/repository"
	"github.com/UnknownOlympus/hrnet/internal/services/employees"
	"github.com/UnknownOlympus/hrnet/internal/store"
)

// ErrRejected is returned after a rejection has already been written in JSON.
var ErrRejected = errors.New("employee rejected")

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of hrnetctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hrnetctl",
		Short: "HRnet employee records",
		Long:  "Add, list and seed HRnet employee records against the configured storage.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the YAML config file (defaults to $CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// session is a submission pipeline bound to the configured storage.
type session struct {
	cfg     *config.Config
	staff   *employees.Staff
	storage repository.Storage
}

func (s *session) Close() error {
	return s.storage.Close()
}

// openSession loads the configuration and restores the persisted records.
// Logs go to errOut so JSON output on stdout stays clean.
func openSession(ctx context.Context, opts *RootOptions, errOut io.Writer) (*session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := sl.Setup(cfg.Env, errOut)

	storage, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	// Metrics are not exported from a one-shot command.
	persister := store.NewPersister(logger, storage, store.Key(cfg.Storage.KeyPrefix), nil)
	staff := employees.NewStaff(logger, persister, nil,
		employees.WithSaveTimeout(cfg.HTTP.SaveTimeout),
		employees.WithLocale(cfg.Table.Locale),
		employees.WithStrictSave(),
	)
	staff.Rehydrate(ctx)

	return &session{cfg: cfg, staff: staff, storage: storage}, nil
}
