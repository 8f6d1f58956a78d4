package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/repository"
	"github.com/AbrarBb/findie/internal/service"
)

type sweeper interface {
	Sweep(ctx context.Context) (*service.SweepResult, error)
	Preview(ctx context.Context) (*service.SweepResult, error)
}

// newSweepCmd runs a single expiry sweep for cron-style schedulers.
func newSweepCmd(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired posts once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			dbPool, err := initDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			svc := service.NewExpiryService(repository.NewStore(dbPool).Posts(), service.SystemClock())
			return runSweep(ctx, svc, dryRun, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List expired posts without deleting them")

	return cmd
}

func runSweep(ctx context.Context, svc sweeper, dryRun bool, out io.Writer) error {
	run := svc.Sweep
	if dryRun {
		run = svc.Preview
	}

	result, err := run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if result.DryRun {
		return enc.Encode(dto.ExpirePostsPreviewResponse{
			Success:      true,
			DryRun:       true,
			ExpiredCount: result.Count(),
			Message:      result.Message(),
		})
	}
	return enc.Encode(dto.ExpirePostsResponse{
		Success:      true,
		DeletedCount: result.Count(),
		Message:      result.Message(),
	})
}
