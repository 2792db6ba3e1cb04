package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"
)

// Columns of the trace file written by the SingleParticle driver.
const (
	timeCol      = 0
	xCol         = 1
	kineticCol   = 7
	potentialCol = 8
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Required file use: $ %s trace_file", os.Args[0])
	}

	cols, err := table.ReadTable(
		os.Args[1], []int{timeCol, xCol, kineticCol, potentialCol}, nil,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	ts, xs, kes, pes := cols[0], cols[1], cols[2], cols[3]
	total := make([]float64, len(ts))
	for i := range total {
		total[i] = kes[i] + pes[i]
	}

	plt.Reset()
	plt.Plot(ts, kes, "b")
	plt.Plot(ts, pes, "r")
	plt.Plot(ts, total, "k", plt.LW(2))
	plt.Show()

	plt.Reset()
	plt.Plot(ts, xs, "g")
	plt.Show()
}
