package main

import (
	"fmt"

	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
	"github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation/habitat"
)

func newHabitatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habitat",
		Short: "Derive habitat-patch metrics over simulated time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			m, _, err := escarp.LoadDomain(cfg)
			if err != nil {
				return err
			}

			crit := habitat.DefaultCriteria()
			crit.Zmin, _ = cmd.Flags().GetFloat64("zmin")
			crit.Zmax, _ = cmd.Flags().GetFloat64("zmax")
			crit.SlopeMax, _ = cmd.Flags().GetFloat64("smax")
			crit.RainMin, _ = cmd.Flags().GetFloat64("rmin")

			tt := mmio.NewTimer()
			mm, err := habitat.Series(m, cfg.Output.Dir, cfg.Snapshots(), crit)
			if err != nil {
				return err
			}
			habitat.WriteCSV(cfg.Output.Dir+"/habitat.metrics.csv", mm)

			if dbfp, _ := cmd.Flags().GetString("db"); len(dbfp) > 0 {
				run, _ := cmd.Flags().GetString("run")
				st, err := habitat.NewStore(dbfp)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Put(run, mm); err != nil {
					return err
				}
				fmt.Printf(" metrics for run %q saved to %s\n", run, dbfp)
			}
			tt.Lap(fmt.Sprintf("habitat metrics complete (%d snapshots)", len(mm)))
			return nil
		},
	}
	d := habitat.DefaultCriteria()
	cmd.Flags().Float64("zmin", d.Zmin, "lower habitat elevation above sea level [m]")
	cmd.Flags().Float64("zmax", d.Zmax, "upper habitat elevation above sea level [m]")
	cmd.Flags().Float64("smax", d.SlopeMax, "maximum habitat slope [m/m]")
	cmd.Flags().Float64("rmin", d.RainMin, "minimum precipitation [m/yr]")
	cmd.Flags().String("db", "", "optional SQLite file to persist metrics")
	cmd.Flags().String("run", "default", "run label used in the metrics database")
	return cmd
}
