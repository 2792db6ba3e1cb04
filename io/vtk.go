package io

import (
	"bufio"
	"fmt"
	"os"
	"path"

	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

// WriteVTK writes the mesh's node-centered fields and every species' number
// density to dir/field_%05d.vti as ASCII VTK ImageData, the format ParaView
// reads for structured Cartesian meshes.
func WriteVTK(
	dir string, fileIndex int, m *mesh.Mesh, sp []*species.Species,
) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fname := path.Join(dir, fmt.Sprintf("field_%05d.vti", fileIndex))
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dims, origin, spacing := m.Dims(), m.Origin(), m.Spacing()

	fmt.Fprintf(w, "<VTKFile type=\"ImageData\">\n")
	fmt.Fprintf(
		w, "<ImageData Origin=\"%g %g %g\" Spacing=\"%g %g %g\" "+
			"WholeExtent=\"0 %d 0 %d 0 %d\">\n",
		origin[0], origin[1], origin[2],
		spacing[0], spacing[1], spacing[2],
		dims[0]-1, dims[1]-1, dims[2]-1,
	)

	// Everything this code computes lives on nodes, not cells.
	fmt.Fprintf(w, "<PointData>\n")

	writeScalarArray(w, "NodeVol", m.NodeVolumes())
	writeScalarArray(w, "phi", m.Potential())
	writeScalarArray(w, "rho", m.Rho())
	for _, s := range sp {
		writeScalarArray(w, s.Name(), s.Density())
	}
	writeVecArray(w, "ef", m.EField())

	fmt.Fprintf(w, "</PointData>\n")
	fmt.Fprintf(w, "</ImageData>\n")
	fmt.Fprintf(w, "</VTKFile>\n")

	return w.Flush()
}

// writeScalarArray writes one scalar field as a named DataArray. VTK expects
// x varying fastest, which matches the fields' flat layout.
func writeScalarArray(w *bufio.Writer, name string, f *grid.Scalar) {
	fmt.Fprintf(
		w, "<DataArray Name=\"%s\" NumberOfComponents=\"1\" "+
			"format=\"ascii\" type=\"Float64\">\n", name,
	)
	for i, x := range f.Data {
		if i > 0 {
			w.WriteByte(' ')
		}
		fmt.Fprintf(w, "%g", x)
	}
	w.WriteByte('\n')
	fmt.Fprintf(w, "</DataArray>\n")
}

func writeVecArray(w *bufio.Writer, name string, f *grid.VecField) {
	fmt.Fprintf(
		w, "<DataArray Name=\"%s\" NumberOfComponents=\"3\" "+
			"format=\"ascii\" type=\"Float64\">\n", name,
	)
	for i, v := range f.Data {
		if i > 0 {
			w.WriteByte(' ')
		}
		fmt.Fprintf(w, "%g %g %g", v[0], v[1], v[2])
	}
	w.WriteByte('\n')
	fmt.Fprintf(w, "</DataArray>\n")
}
