package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnet-sim/qnet-sim/report"
	"github.com/qnet-sim/qnet-sim/sim"
)

var (
	// CLI flags for the simulated topology and workload
	generators             int     // Number of client generators
	requestsPerGenerator   int     // Request quota per generator
	stations               int     // Number of service stations
	fifoSwitches           int     // Number of FIFO switches
	prioritySwitches       int     // Number of Priority switches
	switchCapacity         int     // Slots per switch
	lossProbability        float64 // Drop chance after a slot is granted
	thinkMin, thinkMax     float64 // Think-time range (time units)
	serviceMin, serviceMax float64 // Service-time range (time units)
	seed                   int64   // Master RNG seed

	// CLI flags for the surrounding program
	logLevel     string // Log verbosity level
	configPath   string // Optional YAML config file
	showCharts   bool   // Render ASCII histograms after the run
	showTopology bool   // Render the network topology after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qnet-sim",
	Short: "Discrete-event simulator for a switched queueing network",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := buildConfig(cmd)

		logrus.Infof("Starting simulation with %d generators, %d+%d switches, %d stations, seed=%d",
			cfg.Generators, cfg.FIFOSwitches, cfg.PrioritySwitches, cfg.Stations, cfg.Seed)

		startTime := time.Now()

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Could not construct simulator: %v", err)
		}
		s.Run()

		summary := s.Summarize()
		fmt.Print(report.FormatSummary(summary))
		if showCharts {
			fmt.Println()
			fmt.Print(report.NewGenerator().Charts(s.Metrics, summary))
		}
		if showTopology {
			fmt.Println()
			fmt.Print(report.Topology(s))
		}

		logrus.Infof("Simulation wall time: %v", time.Since(startTime))
	},
}

// buildConfig starts from the YAML file (or the defaults) and lets any
// explicitly set flag override its key.
func buildConfig(cmd *cobra.Command) sim.Config {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Could not load config: %v", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("generators") {
		cfg.Generators = generators
	}
	if flags.Changed("requests-per-generator") {
		cfg.RequestsPerGenerator = requestsPerGenerator
	}
	if flags.Changed("stations") {
		cfg.Stations = stations
	}
	if flags.Changed("fifo-switches") {
		cfg.FIFOSwitches = fifoSwitches
	}
	if flags.Changed("priority-switches") {
		cfg.PrioritySwitches = prioritySwitches
	}
	if flags.Changed("switch-capacity") {
		cfg.SwitchCapacity = switchCapacity
	}
	if flags.Changed("loss-probability") {
		cfg.LossProbability = lossProbability
	}
	if flags.Changed("think-min") {
		cfg.ThinkTime.Min = thinkMin
	}
	if flags.Changed("think-max") {
		cfg.ThinkTime.Max = thinkMax
	}
	if flags.Changed("service-min") {
		cfg.ServiceTime.Min = serviceMin
	}
	if flags.Changed("service-max") {
		cfg.ServiceTime.Max = serviceMax
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg
}

func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().IntVar(&generators, "generators", defaults.Generators, "number of client generators")
	runCmd.Flags().IntVar(&requestsPerGenerator, "requests-per-generator", defaults.RequestsPerGenerator, "request quota per generator")
	runCmd.Flags().IntVar(&stations, "stations", defaults.Stations, "number of service stations")
	runCmd.Flags().IntVar(&fifoSwitches, "fifo-switches", defaults.FIFOSwitches, "number of FIFO switches")
	runCmd.Flags().IntVar(&prioritySwitches, "priority-switches", defaults.PrioritySwitches, "number of Priority switches")
	runCmd.Flags().IntVar(&switchCapacity, "switch-capacity", defaults.SwitchCapacity, "slots per switch")
	runCmd.Flags().Float64Var(&lossProbability, "loss-probability", defaults.LossProbability, "drop chance after a slot is granted")
	runCmd.Flags().Float64Var(&thinkMin, "think-min", defaults.ThinkTime.Min, "minimum think time (time units)")
	runCmd.Flags().Float64Var(&thinkMax, "think-max", defaults.ThinkTime.Max, "maximum think time (time units)")
	runCmd.Flags().Float64Var(&serviceMin, "service-min", defaults.ServiceTime.Min, "minimum service time (time units)")
	runCmd.Flags().Float64Var(&serviceMax, "service-max", defaults.ServiceTime.Max, "maximum service time (time units)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "master RNG seed")

	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log verbosity (debug, info, warn, error)")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	runCmd.Flags().BoolVar(&showCharts, "charts", true, "render ASCII histograms after the run")
	runCmd.Flags().BoolVar(&showTopology, "topology", false, "render the network topology after the run")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
