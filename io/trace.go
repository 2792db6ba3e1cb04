package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/phil-mansfield/gopic/species"
)

// TraceWriter appends per-timestep diagnostics for a single particle to a
// whitespace-delimited text file. The header line is prefixed with '#' so
// column readers skip it.
type TraceWriter struct {
	f *os.File
	w *bufio.Writer
}

// CreateTrace creates the trace file and writes its column header.
func CreateTrace(fname string) (*TraceWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}

	tw := &TraceWriter{f, bufio.NewWriter(f)}
	fmt.Fprintln(tw.w, "# time x y z vx vy vz kinetic potential")
	return tw, nil
}

// Append writes one trace row. Energies are in whatever units the caller
// chose; the drivers use eV.
func (tw *TraceWriter) Append(
	t float64, p *species.Particle, kinetic, potential float64,
) {
	fmt.Fprintf(
		tw.w, "%g %g %g %g %g %g %g %g %g\n",
		t, p.X[0], p.X[1], p.X[2], p.V[0], p.V[1], p.V[2],
		kinetic, potential,
	)
}

// Close flushes and closes the trace file.
func (tw *TraceWriter) Close() error {
	if err := tw.w.Flush(); err != nil {
		tw.f.Close()
		return err
	}
	return tw.f.Close()
}
