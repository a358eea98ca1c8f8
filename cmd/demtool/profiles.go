package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-dem/dem"
)

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles FILE",
		Short: "List the profile records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dem.Open(args[0], a.demOpts...)
			if err != nil {
				return err
			}
			defer f.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "ROW\tCOLUMN\tROWS\tCOLUMNS\tX\tY\tBASE\tMIN\tMAX\tUNKNOWN\t")
			for p, err := range f.Profiles() {
				if err != nil {
					tw.Flush()
					return err
				}
				unknown := 0
				for _, s := range p.Elevations {
					if s == dem.UnknownSample {
						unknown++
					}
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%v\t%v\t%v\t%v\t%v\t%d\t\n",
					p.Row, p.Column, p.Rows, p.Columns,
					p.X, p.Y, p.ElevationBase, p.MinElevation, p.MaxElevation, unknown)
			}
			return tw.Flush()
		},
	}
}
