package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-dem/dem"
)

// app holds the state shared by all subcommands.
type app struct {
	logLevel string
	metrics  bool

	logger  log.Logger
	reg     *prometheus.Registry
	demOpts []dem.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "demtool",
		Short: "Inspect USGS DEM files and export elevation grids",
		Long: "demtool reads USGS Digital Elevation Model files, optionally gzip, " +
			"zlib or zstd compressed, and prints their records or exports their " +
			"elevation grid as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.metrics {
				return nil
			}
			families, err := a.reg.Gather()
			if err != nil {
				return err
			}
			return writeMetrics(cmd.ErrOrStderr(), families)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.metrics, "metrics", false, "print decoder metrics to stderr when done")

	root.AddCommand(
		newInfoCmd(a),
		newProfilesCmd(a),
		newGridCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func (a *app) setup(w io.Writer) error {
	var filter level.Option
	switch strings.ToLower(a.logLevel) {
	case "debug":
		filter = level.AllowDebug()
	case "info":
		filter = level.AllowInfo()
	case "warn", "warning":
		filter = level.AllowWarn()
	case "error":
		filter = level.AllowError()
	default:
		return fmt.Errorf("unknown log level %q", a.logLevel)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, filter)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)
	a.logger = logger

	a.reg = prometheus.NewRegistry()
	a.demOpts = []dem.Option{
		dem.WithLogger(logger),
		dem.WithMetrics(dem.NewMetrics(a.reg)),
	}
	return nil
}

// writeMetrics prints metric families in the Prometheus text format,
// skipping families that were never observed.
func writeMetrics(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
