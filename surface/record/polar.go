package record

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func polar(xc, yc, r, a float64) (float64, float64) {
	return xc + r*math.Cos(a), yc + r*math.Sin(a)
}

// apply maps (x, y) through m.
func apply(m matrix.Matrix, x, y float64) vec.Vec2 {
	x2, y2 := m.Apply(x, y)
	return vec.Vec2{X: x2, Y: y2}
}
