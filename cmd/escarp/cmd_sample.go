package main

import (
	"fmt"
	"runtime"

	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Run a Latin-hypercube ensemble over {K, Ka, Te}",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			m, frc, err := escarp.LoadDomain(cfg)
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("n")
			nwrkrs, _ := cmd.Flags().GetInt("workers")
			if nwrkrs <= 0 {
				nwrkrs = runtime.GOMAXPROCS(0)
			}

			tt := mmio.NewTimer()
			escarp.GenerateSamples(m, frc, cfg, n, nwrkrs, cfg.Output.Dir+"/MC/")
			tt.Lap(fmt.Sprintf("sampling complete (%d realizations)", n))
			return nil
		},
	}
	cmd.Flags().Int("n", 100, "number of realizations")
	cmd.Flags().Int("workers", 0, "concurrent realizations (default: GOMAXPROCS)")
	return cmd
}

func newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate {K, Ka, Te} to an observed scarp-retreat series",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			obsFP, _ := cmd.Flags().GetString("obs")
			if len(obsFP) == 0 {
				return fmt.Errorf("calibrate: an observed retreat series is required (--obs)")
			}
			m, frc, err := escarp.LoadDomain(cfg)
			if err != nil {
				return err
			}

			tt := mmio.NewTimer()
			cFinal, of := escarp.OptimizeRetreat(m, frc, cfg, obsFP)
			tt.Lap("calibration complete")

			outFP, _ := cmd.Flags().GetString("out")
			if err := cFinal.Save(outFP); err != nil {
				return err
			}
			fmt.Printf(" calibrated run control saved to %s (1-KGE: %.4f)\n", outFP, of)
			return nil
		},
	}
	cmd.Flags().String("obs", "", "observed time,scarpx CSV at the snapshot interval")
	cmd.Flags().String("out", "calibrated.yaml", "where to save the calibrated run control")
	return cmd
}
