package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-dem/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		at      []float64
		workers int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "catalog DIR",
		Short: "List the DEM files under a directory and their footprints",
		Long: "Reads the header of every .dem, .dem.gz and .dem.zst file under DIR. " +
			"With --at, only the files whose footprint contains the point are listed. " +
			"Unreadable files are skipped with a warning.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if at != nil && len(at) != 2 {
				return fmt.Errorf("--at takes X,Y, got %v", at)
			}
			idx, err := catalog.BuildFromDir(cmd.Context(), args[0],
				catalog.WithLogger(a.logger),
				catalog.WithWorkers(workers),
				catalog.WithSkipErrors(),
				catalog.WithDecoderOptions(a.demOpts...))
			if err != nil {
				return err
			}

			entries := idx.All()
			if at != nil {
				entries = idx.Covering(at[0], at[1])
			}
			if asJSON {
				if entries == nil {
					entries = []catalog.Entry{}
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tNAME\tREFSYS\tZONE\tUNIT\tMIN X\tMIN Y\tMAX X\tMAX Y")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%g\t%g\t%g\t%g\n",
					e.Path, e.Name, e.RefSys, e.Zone, e.Unit,
					e.Bounds.MinX, e.Bounds.MinY, e.Bounds.MaxX, e.Bounds.MaxY)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", nil, "X,Y ground point the files must cover")
	cmd.Flags().IntVar(&workers, "workers", 0, "headers read concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}
