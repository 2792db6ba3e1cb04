package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gopic/io"
	"github.com/phil-mansfield/gopic/sim"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Init redirects logging and starts profiling per the shared config.
func (fg *FileGroup) Init(con *io.SharedConfig) {
	var err error
	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}
	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		pprof.StartCPUProfile(fg.prof)
	}
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode. The code tries to fail gracefully if
	// the user provides incorrect input.

	var (
		groundedBox, singleParticle string
		exampleConfig               string
	)
	vars := map[string]*string{
		"GroundedBox":    &groundedBox,
		"SingleParticle": &singleParticle,
		"ExampleConfig":  &exampleConfig,
	}

	flag.StringVar(
		&groundedBox, "GroundedBox", "",
		"Configuration file for [GroundedBox] mode: a two-species plasma "+
			"relaxing inside a grounded box.",
	)
	flag.StringVar(
		&singleParticle, "SingleParticle", "",
		"Configuration file for [SingleParticle] mode: a single electron "+
			"oscillating in a static potential well, with an energy trace.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'GroundedBox' and "+
			"'SingleParticle'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "GroundedBox":
		wrap := io.DefaultGroundedBoxWrapper()
		err := gcfg.ReadFileInto(wrap, groundedBox)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.GroundedBox

		switch {
		case !con.ValidOutput():
			log.Fatal("Invalid/non-existent 'Output' value.")
		case !con.ValidNodes():
			log.Fatal("Invalid 'Nodes' value: need at least 3.")
		case !con.ValidBounds():
			log.Fatal("Invalid bounds: every Max must exceed its Origin.")
		case !con.ValidTimestep():
			log.Fatal("Invalid/non-existent 'Timestep' value.")
		case !con.ValidSteps():
			log.Fatal("Invalid/non-existent 'Steps' value.")
		case !con.ValidNumberDensity():
			log.Fatal("Invalid/non-existent 'NumberDensity' value.")
		case !con.ValidSolverIterations():
			log.Fatal("Invalid 'SolverIterations' value.")
		case !con.ValidTolerance():
			log.Fatal("Invalid 'Tolerance' value.")
		case !con.ValidLoading():
			log.Fatal(
				"Invalid particle loading: set positive 'Ions' and " +
					"'Electrons' counts, or lattices of at least 2 nodes " +
					"with 'QuietStart'.",
			)
		case !con.ValidDumpRate():
			log.Fatal("Invalid 'DumpRate' value.")
		}

		fg := &FileGroup{}
		fg.Init(&con.SharedConfig)
		defer fg.Close()

		now := time.Now()
		if err := sim.GroundedBox(con); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("Simulation took %g seconds.", time.Since(now).Seconds())

	case "SingleParticle":
		wrap := io.DefaultSingleParticleWrapper()
		err := gcfg.ReadFileInto(wrap, singleParticle)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.SingleParticle

		switch {
		case !con.ValidOutput():
			log.Fatal("Invalid/non-existent 'Output' value.")
		case !con.ValidNodes():
			log.Fatal("Invalid 'Nodes' value: need at least 3.")
		case !con.ValidBounds():
			log.Fatal("Invalid bounds: every Max must exceed its Origin.")
		case !con.ValidTimestep():
			log.Fatal("Invalid/non-existent 'Timestep' value.")
		case !con.ValidSteps():
			log.Fatal("Invalid/non-existent 'Steps' value.")
		case !con.ValidBackgroundDensity():
			log.Fatal("Invalid 'BackgroundDensity' value.")
		case !con.ValidStartOffset():
			log.Fatal("Invalid 'StartOffset' value: must be inside the box.")
		case !con.ValidSolverIterations():
			log.Fatal("Invalid 'SolverIterations' value.")
		case !con.ValidTolerance():
			log.Fatal("Invalid 'Tolerance' value.")
		case !con.ValidLogRate():
			log.Fatal("Invalid 'LogRate' value.")
		}

		fg := &FileGroup{}
		fg.Init(&con.SharedConfig)
		defer fg.Close()

		now := time.Now()
		if err := sim.SingleParticle(con); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("Simulation took %g seconds.", time.Since(now).Seconds())

	case "ExampleConfig":
		switch exampleConfig {
		case "GroundedBox":
			fmt.Println(io.ExampleGroundedBoxFile)
		case "SingleParticle":
			fmt.Println(io.ExampleSingleParticleFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'GroundedBox' and 'SingleParticle'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gopic only accepts one "+
				"flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}
