package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reciperage/kitchensim/kitchen"
	"github.com/reciperage/kitchensim/kitchen/trace"
)

var (
	// CLI flags for match configuration
	seed          int64   // Seed for deterministic order pacing and recipe choice
	tickRate      float64 // Authoritative ticks per second
	matchDuration float64 // Match length in seconds
	logLevel      string  // Log verbosity level
	catalogPath   string  // Optional catalog YAML override
	validatorName string  // Dish validator strategy

	// Order pacing
	minOrderInterval float64 // Lower bound of the order generation interval
	maxOrderInterval float64 // Upper bound of the order generation interval
	maxActiveOrders  int     // Capacity gate on concurrent active orders

	// Station tuning
	lockDuration      float64 // Seconds before a held station lock goes stale
	cutDuration       float64 // Seconds for a full cut
	dispenserCooldown float64 // Seconds between crate uses
	plateCapacity     int     // Slots per plate

	cooks      int    // Number of scripted cooks playing the match
	traceLevel string // Trace level (none, decisions)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kitchensim",
	Short: "Authoritative simulation kernel for a multi-party cooking match",
}

// runCmd plays one headless match using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless match with scripted cooks",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		catalog, err := loadCatalog(catalogPath)
		if err != nil {
			logrus.Fatalf("Catalog failed to load: %v", err)
		}

		cfg := kitchen.DefaultWorldConfig()
		cfg.Seed = seed
		cfg.TickRate = tickRate
		cfg.MatchDuration = matchDuration
		cfg.LockDuration = lockDuration
		cfg.CutDuration = cutDuration
		cfg.DispenserCooldown = dispenserCooldown
		cfg.PlateCapacity = plateCapacity
		cfg.Validator = validatorName
		cfg.Orders = kitchen.OrderConfig{
			MinInterval:     minOrderInterval,
			MaxInterval:     maxOrderInterval,
			MaxActiveOrders: maxActiveOrders,
		}
		cfg.Trace = trace.Config{Level: trace.Level(traceLevel)}

		logrus.Infof("Starting match: seed=%d, %.0f ticks/s for %.0fs, %d cooks, validator=%s",
			cfg.Seed, cfg.TickRate, cfg.MatchDuration, cooks, cfg.Validator)

		world, err := kitchen.NewWorld(cfg, catalog)
		if err != nil {
			logrus.Fatalf("World configuration invalid: %v", err)
		}
		if err := world.BuildStandardKitchen(); err != nil {
			logrus.Fatalf("Kitchen layout failed: %v", err)
		}

		drivers := make([]func(*kitchen.World), 0, cooks)
		for i := 1; i <= cooks; i++ {
			actor := kitchen.ActorID(fmt.Sprintf("cook_%d", i))
			conn := kitchen.ConnID(fmt.Sprintf("conn_%d", i))
			world.AddActor(actor, conn)
			bot := kitchen.NewScriptedCook(actor, conn)
			drivers = append(drivers, bot.Step)
		}

		startTime := time.Now()
		world.Run(drivers...)

		world.Metrics.Print(cfg.MatchDuration, world.Scores.Totals())
		if summary := trace.Summarize(world.Trace); world.Trace.Config.Level == trace.LevelDecisions {
			fmt.Printf("Trace: %d interactions (%d rejected), %d orders completed, %d expired\n",
				summary.TotalInteractions, summary.RejectedCount, summary.OrdersCompleted, summary.OrdersExpired)
		}
		logrus.Infof("Match complete in %s wall time.", time.Since(startTime).Round(time.Millisecond))
	},
}

func loadCatalog(path string) (*kitchen.Catalog, error) {
	if path != "" {
		return kitchen.LoadCatalog(path)
	}
	return DefaultCatalog()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic order generation")
	runCmd.Flags().Float64Var(&tickRate, "tick-rate", 20, "Authoritative ticks per second")
	runCmd.Flags().Float64Var(&matchDuration, "match-duration", 180, "Match length in seconds")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog YAML path (empty = embedded defaults)")
	runCmd.Flags().StringVar(&validatorName, "validator", "standard", "Dish validator strategy (standard, strict)")

	runCmd.Flags().Float64Var(&minOrderInterval, "min-order-interval", 5, "Minimum seconds between orders")
	runCmd.Flags().Float64Var(&maxOrderInterval, "max-order-interval", 15, "Maximum seconds between orders")
	runCmd.Flags().IntVar(&maxActiveOrders, "max-active-orders", 5, "Maximum concurrent active orders")

	runCmd.Flags().Float64Var(&lockDuration, "lock-duration", 5, "Seconds before a station lock goes stale")
	runCmd.Flags().Float64Var(&cutDuration, "cut-duration", 3, "Seconds for a full cut")
	runCmd.Flags().Float64Var(&dispenserCooldown, "dispenser-cooldown", 1, "Seconds between crate uses")
	runCmd.Flags().IntVar(&plateCapacity, "plate-capacity", 4, "Slots per plate")

	runCmd.Flags().IntVar(&cooks, "cooks", 1, "Number of scripted cooks")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, decisions)")

	rootCmd.AddCommand(runCmd)
}
