package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/kirbyh/mag-fields/geom"
)

// ReadCrossSection reads a coil cross-section polyline from a two-column
// text table of boundary points. If the polyline is not closed, the closing
// point is appended.
func ReadCrossSection(fname string) (cross []geom.Vec2, err error) {
	// The current table API panics on read failures instead of returning an
	// error; convert panics back into the error return expected by callers.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	cols := table.TextFile(fname).ReadFloat64s([]int{0, 1})

	xs, ys := cols[0], cols[1]
	if len(xs) < 2 {
		return nil, fmt.Errorf(
			"Cross-section file '%s' has %d points, but at least 2 are "+
				"needed.", fname, len(xs),
		)
	}

	cross = make([]geom.Vec2, len(xs))
	for i := range xs {
		cross[i] = geom.Vec2{xs[i], ys[i]}
	}

	if cross[0] != cross[len(cross)-1] {
		cross = append(cross, cross[0])
	}
	return cross, nil
}
