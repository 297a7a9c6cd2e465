package grid

import (
	"fmt"
	"os"
	"time"

	"github.com/voxelprint/amfilter/amerr"
)

// WriteInp writes the grid as a mesh of C3D8 (8-node hex) elements to an
// ABAQUS/CalculiX .inp file, with a node-indexed scalar field (e.g. a
// printable or blueprint density) exported as nodal temperatures. This is
// a diagnostic convenience for loading a field into a CalculiX/FEA
// viewer; nothing in this module reads the file back.
func (g *OrthoGrid) WriteInp(path string, field []float64) error {
	if len(field) != g.NodeCount() {
		return amerr.Domainf("grid: field length %d does not match node count %d", len(field), g.NodeCount())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("**\n** Structure: orthogonal voxel grid of a printability field.\n**\n"); err != nil {
		return err
	}
	if _, err := f.WriteString("*HEADING\nModel: AM filter grid Date: " + time.Now().UTC().Format("2006-Jan-02 MST") + "\n"); err != nil {
		return err
	}

	if _, err := f.WriteString("*NODE\n"); err != nil {
		return err
	}
	xyz := g.AllXYZ()
	for i, p := range xyz {
		if _, err := f.WriteString(fmt.Sprintf("%d,%f,%f,%f\n", i+1, p.X, p.Y, p.Z)); err != nil {
			return err
		}
	}

	if _, err := f.WriteString("*ELEMENT, TYPE=C3D8, ELSET=Eall\n"); err != nil {
		return err
	}
	eleID := 1
	for k := 0; k < g.nw-1; k++ {
		for j := 0; j < g.nv-1; j++ {
			for i := 0; i < g.nu-1; i++ {
				var corners [8]int
				for c, off := range hexOffsets {
					idx, err := g.Index(i+off[0], j+off[1], k+off[2])
					if err != nil {
						return err
					}
					corners[c] = idx + 1
				}
				if _, err := f.WriteString(fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d,%d,%d\n",
					eleID, corners[0], corners[1], corners[3], corners[2],
					corners[4], corners[5], corners[7], corners[6])); err != nil {
					return err
				}
				eleID++
			}
		}
	}

	if _, err := f.WriteString("*NODAL TEMPERATURE\n"); err != nil {
		return err
	}
	for i, v := range field {
		if _, err := f.WriteString(fmt.Sprintf("%d,%f\n", i+1, v)); err != nil {
			return err
		}
	}

	return nil
}
