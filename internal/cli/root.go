// Package cli implements ledgerctl, a command line client that works directly
// against the ledger database.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tropicaldog17/orgledger/internal/app"
	"github.com/tropicaldog17/orgledger/internal/config"
	"github.com/tropicaldog17/orgledger/internal/logger"
	"github.com/tropicaldog17/orgledger/internal/services"
)

// Opener loads a ledger and returns it with a function releasing it.
type Opener func(ctx context.Context) (ledger services.LedgerService, loc *time.Location, closeFn func() error, err error)

// state is shared by the subcommands of one invocation.
type state struct {
	open    Opener
	ledger  services.LedgerService
	loc     *time.Location
	closeFn func() error
	asJSON  bool
}

// NewRootCmd builds the ledgerctl command tree.
func NewRootCmd(open Opener) *cobra.Command {
	st := &state{open: open}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect and edit the organization ledger",
		Long: `ledgerctl reads and writes the organization income/expense ledger
directly through the configured database (see DB_DRIVER, SQLITE_PATH and the
DB_* variables). Totals are computed the same way the API server does.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ledger, loc, closeFn, err := st.open(cmd.Context())
			if err != nil {
				return err
			}
			st.ledger, st.loc, st.closeFn = ledger, loc, closeFn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.closeFn == nil {
				return nil
			}
			return st.closeFn()
		},
	}
	root.PersistentFlags().BoolVar(&st.asJSON, "json", false, "Print JSON instead of a table")

	root.AddCommand(
		newSummaryCmd(st),
		newListCmd(st),
		newAddCmd(st),
		newUpdateCmd(st),
		newDeleteCmd(st),
		newReportCmd(st),
	)
	return root
}

// Execute runs ledgerctl against the database described by the environment.
func Execute() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	lg, err := logger.New()
	if err != nil {
		return err
	}
	defer lg.Sync()

	open := func(ctx context.Context) (services.LedgerService, *time.Location, func() error, error) {
		a, err := app.Open(ctx, cfg, lg.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
		if err != nil {
			return nil, nil, nil, err
		}
		return a.Ledger, a.Location, a.Close, nil
	}
	return NewRootCmd(open).ExecuteContext(context.Background())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
