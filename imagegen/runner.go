package imagegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"coastal-realty/utils/logger"

	"golang.org/x/time/rate"
)

// Summary tallies a run.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d generated, %d failed, %d skipped", s.Succeeded, s.Failed, s.Skipped)
}

// Runner generates jobs one at a time, at most one request per delay.
// Failures are logged and skipped; nothing is retried.
type Runner struct {
	gen     Generator
	model   string
	limiter *rate.Limiter
	force   bool
	log     logger.Logger
	out     io.Writer
}

type RunnerOption func(*Runner)

// WithForce regenerates images that already exist on disk.
func WithForce(force bool) RunnerOption {
	return func(r *Runner) { r.force = force }
}

// WithProgress writes one line per job to w.
func WithProgress(w io.Writer) RunnerOption {
	return func(r *Runner) { r.out = w }
}

func NewRunner(gen Generator, model string, delay time.Duration, log logger.Logger, opts ...RunnerOption) *Runner {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	r := &Runner{
		gen:     gen,
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes jobs in order. It stops early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Summary, error) {
	var sum Summary
	for i, job := range jobs {
		prefix := fmt.Sprintf("[%d/%d] %s", i+1, len(jobs), job.Name)

		if !r.force && fileExists(job.OutputPath) {
			sum.Skipped++
			fmt.Fprintf(r.out, "%s: exists, skipped\n", prefix)
			continue
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return sum, err
		}

		if err := r.generate(ctx, job); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return sum, err
			}
			sum.Failed++
			r.log.Warn("image generation failed", logger.String("job", job.Name), logger.Error(err))
			fmt.Fprintf(r.out, "%s: failed: %v\n", prefix, err)
			continue
		}
		sum.Succeeded++
		fmt.Fprintf(r.out, "%s: wrote %s\n", prefix, job.OutputPath)
	}
	return sum, nil
}

func (r *Runner) generate(ctx context.Context, job Job) error {
	data, err := r.gen.Generate(ctx, r.model, job.Prompt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(job.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
