/*plot_trajectories integrates a handful of particles through the shielded
and unshielded field of a configured coil array and renders their x-y
projections with matplotlib.

Usage: $ plot_trajectories mc.config out.png
*/
package main

import (
	"math"
	"math/rand"
	"os"

	log "github.com/sirupsen/logrus"
	plt "github.com/phil-mansfield/pyplot"

	magfields "github.com/kirbyh/mag-fields"
	"github.com/kirbyh/mag-fields/field"
	"github.com/kirbyh/mag-fields/geom"
	"github.com/kirbyh/mag-fields/integrator"
	"github.com/kirbyh/mag-fields/io"
)

const trajectories = 12

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Required file use: $ %s mc_config out_png", os.Args[0])
	}
	confFile, outFile := os.Args[1], os.Args[2]

	wrap, err := io.ReadMonteCarloConfig(confFile)
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

	ctx := &integrator.FieldContext{
		Src: field.NewSource(ca, cfg.Current),
		Mass: cfg.Mass,
		Charge: cfg.Charge,
		B0: cfg.B0,
		Relativistic: cfg.Relativistic,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	rk := integrator.NewRK45()

	plt.Reset()

	for i := 0; i < trajectories; i++ {
		pos := magfields.SpherePoint(rng, cfg.SphereRadius)
		var dir geom.Vec
		pos.Scale(-1/pos.Norm(), &dir)

		u := ctx.InitialMomentum(&dir, cfg.Energy)
		span := ctx.CrossingSpan(&u, cfg.SphereRadius)

		trail, err := integrator.RunTrajectory(ctx, &pos, &u, span, rk)
		if err != nil {
			log.Warnf("Trajectory %d failed: %s", i, err.Error())
			continue
		}

		xs := make([]float64, len(trail))
		ys := make([]float64, len(trail))
		for j := range trail {
			xs[j], ys[j] = trail[j][0], trail[j][1]
		}
		plt.Plot(xs, ys, plt.LW(1))
	}

	// Protected sphere outline.
	circXs := make([]float64, 101)
	circYs := make([]float64, 101)
	for i := range circXs {
		th := 2 * math.Pi * float64(i) / 100
		circXs[i] = cfg.Thresh * math.Cos(th)
		circYs[i] = cfg.Thresh * math.Sin(th)
	}
	plt.Plot(circXs, circYs, "k", plt.LW(2))

	plt.Title("Shielded trajectories")
	plt.XLabel(`$x$ [m]`, plt.FontSize(16))
	plt.YLabel(`$y$ [m]`, plt.FontSize(16))
	plt.SaveFig(outFile)
	plt.Execute()
}
