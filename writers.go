package escarp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// writeFloats32 writes a grid-referenced float32 .bil with its .hdr sidecar.
func writeFloats32(gd *grid.Definition, fp string, f []float64) {
	if err := writeFloats(fp, f); err != nil {
		panic(err)
	}
	gd.ToHDRfloat(mmio.RemoveExtension(fp)+".hdr", 1, 32)
}

// writeInts32 writes integer fields as float32 .bil so every check raster
// shares one header convention.
func writeInts32(gd *grid.Definition, fp string, ii []int32) {
	f := make([]float64, len(ii))
	for i, v := range ii {
		f[i] = float64(v)
	}
	writeFloats32(gd, fp, f)
}
