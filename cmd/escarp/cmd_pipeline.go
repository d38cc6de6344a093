package main

import (
	"fmt"
	"runtime"

	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
	"github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation/postpro"
)

func loadConfig(cmd *cobra.Command) (*escarp.Config, error) {
	fp, _ := cmd.Flags().GetString("config")
	return escarp.LoadConfig(fp)
}

func newMeshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mesh",
		Short: "Build the escarpment grid and initial surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tt := mmio.NewTimer()
			escarp.BuildMesh(cfg)
			tt.Lap("mesh build complete")
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the landscape-evolution simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fmt.Println("")
			tt := mmio.NewTimer()
			defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

			m, frc, err := escarp.LoadDomain(cfg)
			if err != nil {
				return fmt.Errorf("run: %v (has the mesh stage been run?)", err)
			}
			tt.Print("domain load complete\n")
			frc.CheckAndPrint()

			escarp.Evaluate(m, frc, cfg, cfg.Output.Dir, true)

			// check rasters of the final state, beside the mesh's
			chkdir := mmio.GetFileDir(cfg.Domain.Npdata+"x") + "/check/"
			mmio.MakeDir(chkdir)
			s, err := escarp.LoadGobState(escarp.SnapshotFP(cfg.Output.Dir, cfg.Snapshots()-1))
			if err != nil {
				return fmt.Errorf("run: %v", err)
			}
			s.Checkandprint(m.GD, chkdir)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert snapshots to netCDF and extract profile curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			m, _, err := escarp.LoadDomain(cfg)
			if err != nil {
				return err
			}

			step, _ := cmd.Flags().GetInt("step")
			row, _ := cmd.Flags().GetInt("row")
			if row < 0 {
				row = m.Nr / 2
			}

			k0, k1 := 0, cfg.Snapshots()
			if step >= 0 {
				k0, k1 = step, step+1
			}
			tt := mmio.NewTimer()
			for k := k0; k < k1; k++ {
				s, err := escarp.LoadGobState(escarp.SnapshotFP(cfg.Output.Dir, k))
				if err != nil {
					return fmt.Errorf("export snapshot %d: %v", k, err)
				}
				ncfile := fmt.Sprintf("%s/escarp.%d.nc", cfg.Output.Dir, k)
				if err := postpro.ExportNetCDF(m, s, cfg.Domain.UTMzone, ncfile); err != nil {
					return err
				}
				if err := postpro.WriteProfiles(m, s, row, cfg.Output.Dir+"/"); err != nil {
					return err
				}
			}
			tt.Lap(fmt.Sprintf("exported %d snapshot(s)", k1-k0))
			return nil
		},
	}
	cmd.Flags().Int("step", -1, "export a single snapshot (default: all)")
	cmd.Flags().Int("row", -1, "transect row for profiles (default: mid-domain)")
	return cmd
}
