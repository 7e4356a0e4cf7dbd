package loadgen

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/tools/common"
	"github.com/sandeepkv93/credential-vault-backend/internal/tools/ui"
)

const toolName = "loadgen"

type options struct {
	baseURL     string
	profile     string
	duration    time.Duration
	rps         int
	concurrency int
	seed        uint64
	learners    []string
	ci          bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "loadgen", Short: "Generate certificate API traffic"}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "API base URL")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "mixed", "traffic profile: read|mixed|write-heavy|error-heavy")
	cmd.PersistentFlags().DurationVar(&opts.duration, "duration", 15*time.Second, "traffic duration")
	cmd.PersistentFlags().IntVar(&opts.rps, "rps", 20, "requests per second")
	cmd.PersistentFlags().IntVar(&opts.concurrency, "concurrency", 6, "concurrent workers")
	cmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 42, "random seed")
	cmd.PersistentFlags().StringSliceVar(&opts.learners, "learners", []string{"1", "2", "3"}, "learner ids to spread traffic over")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newRunCommand(opts))
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run load generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			details, err := run(opts, "loadgen run", func(ctx context.Context) ([]string, error) {
				res, err := Run(ctx, Config{
					BaseURL:     opts.baseURL,
					Profile:     opts.profile,
					Duration:    opts.duration,
					RPS:         opts.rps,
					Concurrency: opts.concurrency,
					Seed:        opts.seed,
					LearnerIDs:  opts.learners,
				})
				if err != nil {
					return nil, err
				}
				return res.lines(), nil
			})
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			observability.RecordToolCommandRun(context.Background(), toolName, "run", outcome)
			observability.RecordToolCommandDuration(context.Background(), toolName, "run", outcome, time.Since(start))
			if opts.ci {
				common.PrintCIResult(err == nil, "loadgen run", details, err)
			}
			if err != nil {
				os.Exit(4)
			}
			return nil
		},
	}
}

func (r Result) lines() []string {
	return []string{
		fmt.Sprintf("total_requests=%d", r.TotalRequests),
		fmt.Sprintf("failures=%d", r.Failures),
		fmt.Sprintf("status_2xx=%d", r.Status2xx),
		fmt.Sprintf("status_4xx=%d", r.Status4xx),
		fmt.Sprintf("status_429=%d", r.Status429),
		fmt.Sprintf("status_5xx=%d", r.Status5xx),
	}
}

func run(opts *options, title string, fn func(context.Context) ([]string, error)) ([]string, error) {
	if opts.ci {
		ctx, cancel := context.WithTimeout(context.Background(), opts.duration+15*time.Second)
		defer cancel()
		return fn(ctx)
	}
	return ui.Run(title, fn)
}
