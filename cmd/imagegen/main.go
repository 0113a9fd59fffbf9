// Command imagegen generates neighborhood, place and monthly guide images
// from the content dataset.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coastal-realty/config"
	"coastal-realty/imagegen"
	"coastal-realty/store"
	"coastal-realty/utils/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	outDir     string
	model      string
	delay      time.Duration
	force      bool
	verbose    bool

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "imagegen",
	Short: "Generate site imagery with a text-to-image model",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level, verbose)
		if err != nil {
			return err
		}
		applyDefaults(cmd)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// applyDefaults fills flags the user did not set from configuration.
func applyDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("data") {
		dataDir = cfg.Content.DataDir
	}
	if !flags.Changed("out") {
		outDir = cfg.Images.OutputDir
	}
	if !flags.Changed("model") {
		model = cfg.Images.Model
	}
	if !flags.Changed("delay") {
		delay = cfg.Images.Delay
	}
}

type jobSet func(ds *store.Dataset, out string) []imagegen.Job

var neighborhoodsCmd = &cobra.Command{
	Use:   "neighborhoods",
	Short: "One hero image per property neighborhood",
	RunE:  runJobs(imagegen.NeighborhoodJobs),
}

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "A card image for every place",
	RunE: runJobs(func(ds *store.Dataset, out string) []imagegen.Job {
		return imagegen.PlaceJobs(ds, out)
	}),
}

var guidesCmd = &cobra.Command{
	Use:   "guides",
	Short: "A cover image per monthly guide",
	RunE:  runJobs(imagegen.GuideJobs),
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Neighborhoods, places and guides in one run",
	RunE: runJobs(func(ds *store.Dataset, out string) []imagegen.Job {
		jobs := imagegen.NeighborhoodJobs(ds, out)
		jobs = append(jobs, imagegen.PlaceJobs(ds, out)...)
		return append(jobs, imagegen.GuideJobs(ds, out)...)
	}),
}

func runJobs(build jobSet) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ds, err := store.NewFileSource(dataDir).Load(ctx)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		jobs := build(ds, outDir)
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to generate")
			return nil
		}

		gen, err := imagegen.NewGenAIGenerator(ctx, cfg.Images.APIKey)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "generating %d images with %s into %s\n", len(jobs), model, outDir)
		runner := imagegen.NewRunner(gen, model, delay, log,
			imagegen.WithForce(force),
			imagegen.WithProgress(cmd.OutOrStdout()),
		)
		sum, err := runner.Run(ctx, jobs)
		fmt.Fprintln(cmd.OutOrStdout(), sum)
		if err != nil {
			return err
		}
		if sum.Failed > 0 {
			return fmt.Errorf("%d images failed", sum.Failed)
		}
		return nil
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "config.yml", "path to YAML config file")
	pf.StringVar(&dataDir, "data", "", "content dataset directory")
	pf.StringVar(&outDir, "out", "", "output directory for images")
	pf.StringVar(&model, "model", "", "image model identifier")
	pf.DurationVar(&delay, "delay", 0, "minimum time between requests")
	pf.BoolVar(&force, "force", false, "regenerate images that already exist")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(neighborhoodsCmd, placesCmd, guidesCmd, allCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
