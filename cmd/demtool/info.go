package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-dem/dem"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newInfoCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Print the header and statistics records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := dem.ReadInfo(args[0], a.demOpts...)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			return writeInfo(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print every field as JSON")
	return cmd
}

func writeInfo(w io.Writer, info *dem.Info) error {
	h := info.Header
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", h.FileName)
	fmt.Fprintf(tw, "Origin:\t%v, %v\n", h.Longitude, h.Latitude)
	fmt.Fprintf(tw, "Reference system:\t%v (zone %v)\n", h.RefSys, h.RefSysZone)
	fmt.Fprintf(tw, "Units:\thorizontal %v, vertical %v\n",
		dem.UnitFromCode(h.HorizontalUnit), dem.UnitFromCode(h.VerticalUnit))
	fmt.Fprintf(tw, "Resolution:\t%v x %v x %v\n", h.XResolution, h.YResolution, h.ZResolution)
	fmt.Fprintf(tw, "Profiles:\t%v (rows %v)\n", h.Columns, h.Rows)
	fmt.Fprintf(tw, "Elevation range:\t%v .. %v\n", h.MinElevation, h.MaxElevation)
	fmt.Fprintf(tw, "Rotation:\t%v\n", h.RotationAngle)
	for i, c := range h.Corners {
		fmt.Fprintf(tw, "Corner %d:\t%v\n", i+1, c)
	}
	fmt.Fprintf(tw, "Datums:\thorizontal %v, vertical %v\n", h.HorizontalDatum, h.VerticalDatum)
	if s := info.Statistics; s != nil {
		fmt.Fprintf(tw, "Datum RMSE:\t%v\n", s.DatumRMSE)
		fmt.Fprintf(tw, "DEM RMSE:\t%v\n", s.DEMRMSE)
	} else {
		fmt.Fprintf(tw, "Statistics:\tnone\n")
	}
	return tw.Flush()
}
