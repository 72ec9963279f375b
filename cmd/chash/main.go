package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/metrics"
)

var (
	capacity    int
	loadFactor  float64
	verbose     bool
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "chash",
	Short: "Drive a chained hash table from the command line",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute table commands from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		if metricsAddr != "" {
			go serveMetrics(metricsAddr)
		}

		table, err := newTable("run")
		if err != nil {
			return err
		}
		return NewShell("run", table, cmd.OutOrStdout()).Run(in)
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Insert sample data and print lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := newTable("demo")
		if err != nil {
			return err
		}
		return demo(table, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", chash.DefaultCapacity, "initial bucket count")
	rootCmd.PersistentFlags().Float64Var(&loadFactor, "load-factor", chash.DefaultLoadFactor, "size/capacity ratio that triggers growth, in (0, 1]")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log resize events")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	rootCmd.AddCommand(runCmd, demoCmd)
}

func newTable(name string) (*chash.Table, error) {
	table, err := chash.New(capacity, loadFactor,
		chash.WithLogger(log.WithField("table", name)),
		chash.WithObserver(metrics.NewObserver(name)))
	if err != nil {
		return nil, err
	}
	metrics.SetCapacity(name, table.Capacity())
	return table, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Infof("Serving metrics at %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorf("Metrics server stopped: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
