/*plot_hoop_forces computes the net Lorentz force on every coil of a
configured array and renders the coil outlines and force vectors in the x-y
plane.

Usage: $ plot_hoop_forces forces.config out.png
*/
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/kirbyh/mag-fields/field"
	"github.com/kirbyh/mag-fields/io"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Required file use: $ %s forces_config out_png", os.Args[0])
	}
	confFile, outFile := os.Args[1], os.Args[2]

	wrap, err := io.ReadForcesConfig(confFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	ca, err := wrap.CoilArray.Build()
	if err != nil {
		log.Fatal(err.Error())
	}

	src := field.NewSource(ca, wrap.Forces.Current)
	forces := src.PanelForces(wrap.Forces.OmitSelfCoil)
	net, mids := field.HoopForces(forces, ca)

	// Scale arrows so the largest force spans a quarter of the array radius.
	fMax := 0.0
	for k := range net {
		if n := net[k].Norm(); n > fMax {
			fMax = n
		}
	}
	scale := 0.25 * ca.Radius / fMax

	plt.Reset()

	for k := range ca.Coils {
		pts := ca.Coils[k].Points
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for j := range pts {
			xs[j], ys[j] = pts[j][0], pts[j][1]
		}
		plt.Plot(xs, ys, "k", plt.LW(1))

		plt.Plot(
			[]float64{mids[k][0], mids[k][0] + scale*net[k][0]},
			[]float64{mids[k][1], mids[k][1] + scale*net[k][1]},
			"r", plt.LW(2),
		)
	}

	plt.Title("Net hoop forces")
	plt.XLabel(`$x$ [m]`, plt.FontSize(16))
	plt.YLabel(`$y$ [m]`, plt.FontSize(16))
	plt.SaveFig(outFile)
	plt.Execute()
}
