package main

import (
	"flag"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	magfields "github.com/kirbyh/mag-fields"
	"github.com/kirbyh/mag-fields/field"
	"github.com/kirbyh/mag-fields/io"
)

func main() {
	var (
		monteCarlo, forces, exampleConfig string
	)
	vars := map[string]*string{
		"MonteCarlo": &monteCarlo,
		"Forces": &forces,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&monteCarlo, "MonteCarlo", "",
		"Configuration file for [MonteCarlo] mode.",
	)
	flag.StringVar(
		&forces, "Forces", "",
		"Configuration file for [Forces] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'MonteCarlo' and 'Forces'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "MonteCarlo":
		monteCarloMain(monteCarlo)
	case "Forces":
		forcesMain(forces)
	case "ExampleConfig":
		switch exampleConfig {
		case "MonteCarlo":
			fmt.Println(io.ExampleMonteCarloFile)
		case "Forces":
			fmt.Println(io.ExampleForcesFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'MonteCarlo' and 'Forces'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func monteCarloMain(fname string) {
	wrap, err := io.ReadMonteCarloConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}

	ca, err := wrap.CoilArray.Build()
	if err != nil {
		log.Fatal(err.Error())
	}
	cfg, err := wrap.MonteCarlo.Convert()
	if err != nil {
		log.Fatal(err.Error())
	}

	st, err := magfields.RunMonteCarlo(ca, cfg)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Printf("%15s: %d\n", "Particles", st.N)
	fmt.Printf("%15s: %d\n", "Baseline Hits", st.BaselineHits)
	fmt.Printf("%15s: %d\n", "Deflected", st.Deflected)
	fmt.Printf("%15s: %d\n", "Parasitic", st.Parasitic)
	fmt.Printf("%15s: %d\n", "Failed", st.Failed)
	if st.Defined() {
		fmt.Printf("%15s: %g\n", "Deflection Rate", st.DeflectionRate)
		fmt.Printf("%15s: %g\n", "Parasitic Rate", st.ParasiticRate)
	} else {
		fmt.Printf("%15s: undefined (no baseline hits)\n", "Deflection Rate")
	}
}

func forcesMain(fname string) {
	wrap, err := io.ReadForcesConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}

	ca, err := wrap.CoilArray.Build()
	if err != nil {
		log.Fatal(err.Error())
	}

	src := field.NewSource(ca, wrap.Forces.Current)
	panelForces := src.PanelForces(wrap.Forces.OmitSelfCoil)
	net, mids := field.HoopForces(panelForces, ca)

	fmt.Printf("%4s %38s %38s\n", "Coil", "Midpoint [m]", "Net Force [N]")
	for k := range net {
		fmt.Printf(
			"%4d [%10.4g %10.4g %10.4g] [%10.4g %10.4g %10.4g]\n",
			k, mids[k][0], mids[k][1], mids[k][2],
			net[k][0], net[k][1], net[k][2],
		)
	}
}

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
			"The following flags were set: %s, but mag-fields only accepts "+
				"one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}
