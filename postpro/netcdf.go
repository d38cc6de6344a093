package postpro

import (
	"fmt"
	"os"
	"time"

	"github.com/fhs/go-netcdf/netcdf"
	"github.com/im7mortal/UTM"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

// ExportNetCDF reformats one snapshot onto its netCDF grid for external
// visualization. Elevations are written relative to the snapshot's sea
// level; when utmzone is set, latitude/longitude coordinate fields are
// derived from the metric grid.
func ExportNetCDF(m *escarp.Mesh, s *escarp.State, utmzone int, ncfile string) error {

	os.Remove(ncfile) // clobber

	ds, err := netcdf.CreateFile(ncfile, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("ExportNetCDF create: %v", err)
	}
	defer ds.Close()

	if err := ds.Attr("description").WriteBytes([]byte("escarp outputs")); err != nil {
		return fmt.Errorf("ExportNetCDF attr: %v", err)
	}
	ds.Attr("history").WriteBytes([]byte("Created " + time.Now().Format(time.ANSIC)))

	dy, err := ds.AddDim("y", uint64(m.Nr))
	if err != nil {
		return fmt.Errorf("ExportNetCDF dim: %v", err)
	}
	dx, err := ds.AddDim("x", uint64(m.Nc))
	if err != nil {
		return fmt.Errorf("ExportNetCDF dim: %v", err)
	}

	vy, err := ds.AddVar("y", netcdf.DOUBLE, []netcdf.Dim{dy})
	if err != nil {
		return fmt.Errorf("ExportNetCDF var: %v", err)
	}
	vy.Attr("units").WriteBytes([]byte("metres"))
	vx, err := ds.AddVar("x", netcdf.DOUBLE, []netcdf.Dim{dx})
	if err != nil {
		return fmt.Errorf("ExportNetCDF var: %v", err)
	}
	vx.Attr("units").WriteBytes([]byte("metres"))

	type fvar struct {
		name, units string
		data        []float64
	}
	elev := make([]float64, len(s.Elev))
	for i, v := range s.Elev {
		elev[i] = v - s.Sea
	}
	fvars := []fvar{
		{"elevation", "metres", elev},
		{"erodep_rate", "m/yr", s.EDRate},
		{"erodep", "metres", s.EroDep},
		{"precipitation", "m/yr", s.Rain},
		{"fillDischarge", "m3/yr", s.FillAcc},
		{"sedimentLoad", "m3/yr", s.SedLoad},
		{"uplift", "m", s.Uplift},
		{"flex", "m", s.Flex},
	}
	grd := []netcdf.Dim{dy, dx}
	vv := make([]netcdf.Var, len(fvars))
	for i, f := range fvars {
		v, err := ds.AddVar(f.name, netcdf.DOUBLE, grd)
		if err != nil {
			return fmt.Errorf("ExportNetCDF var %s: %v", f.name, err)
		}
		v.Attr("units").WriteBytes([]byte(f.units))
		vv[i] = v
	}
	vb, err := ds.AddVar("basinID", netcdf.INT, grd)
	if err != nil {
		return fmt.Errorf("ExportNetCDF var basinID: %v", err)
	}
	vb.Attr("units").WriteBytes([]byte("int"))

	var vlat, vlon netcdf.Var
	if utmzone > 0 {
		if vlat, err = ds.AddVar("latitude", netcdf.DOUBLE, grd); err != nil {
			return fmt.Errorf("ExportNetCDF var latitude: %v", err)
		}
		vlat.Attr("units").WriteBytes([]byte("degrees_north"))
		if vlon, err = ds.AddVar("longitude", netcdf.DOUBLE, grd); err != nil {
			return fmt.Errorf("ExportNetCDF var longitude: %v", err)
		}
		vlon.Attr("units").WriteBytes([]byte("degrees_east"))
	}

	if err := ds.EndDef(); err != nil {
		return fmt.Errorf("ExportNetCDF enddef: %v", err)
	}

	ys := make([]float64, m.Nr)
	for r := range ys {
		ys[r] = (float64(m.Nr-r) - .5) * m.Cw
	}
	xs := make([]float64, m.Nc)
	for c := range xs {
		xs[c] = m.X(c)
	}
	if err := vy.WriteFloat64s(ys); err != nil {
		return fmt.Errorf("ExportNetCDF write y: %v", err)
	}
	if err := vx.WriteFloat64s(xs); err != nil {
		return fmt.Errorf("ExportNetCDF write x: %v", err)
	}

	for i, f := range fvars {
		if err := vv[i].WriteFloat64s(f.data); err != nil {
			return fmt.Errorf("ExportNetCDF write %s: %v", f.name, err)
		}
	}
	if err := vb.WriteInt32s(s.Basin); err != nil {
		return fmt.Errorf("ExportNetCDF write basinID: %v", err)
	}

	if utmzone > 0 {
		lat := make([]float64, m.Nr*m.Nc)
		lon := make([]float64, m.Nr*m.Nc)
		for i := range lat {
			r, c := m.RowCol(i)
			la, lo, err := UTM.ToLatLon(xs[c], ys[r], utmzone, "", true)
			if err != nil {
				return fmt.Errorf("ExportNetCDF utm: %v", err)
			}
			lat[i], lon[i] = la, lo
		}
		if err := vlat.WriteFloat64s(lat); err != nil {
			return fmt.Errorf("ExportNetCDF write latitude: %v", err)
		}
		if err := vlon.WriteFloat64s(lon); err != nil {
			return fmt.Errorf("ExportNetCDF write longitude: %v", err)
		}
	}
	return nil
}
