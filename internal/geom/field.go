package geom

import "math/rand"

// Field is the bounded play area plus its static obstacles.
// Immutable once generated; safe to share between readers.
type Field struct {
	Width     float64
	Height    float64
	Obstacles []Obstacle
}

// Blocked reports whether a circle at (cx, cy) with radius r overlaps any
// obstacle. This is the single intersection predicate used by every movement
// and placement routine so actors can never be placed inside solids one
// caller considers passable.
func (f *Field) Blocked(cx, cy, r float64) bool {
	for _, o := range f.Obstacles {
		if o.HitsCircle(cx, cy, r) {
			return true
		}
	}
	return false
}

// Clamp clamps a position within field bounds, accounting for actor radius.
func (f *Field) Clamp(x, y, r float64) (float64, float64) {
	minX, maxX := r, f.Width-r
	minY, maxY := r, f.Height-r

	if x < minX {
		x = minX
	} else if x > maxX {
		x = maxX
	}
	if y < minY {
		y = minY
	} else if y > maxY {
		y = maxY
	}
	return x, y
}

// NearestObstacle returns the obstacle whose center is closest to (x, y)
// and the distance to that center. ok is false for an empty field.
func (f *Field) NearestObstacle(x, y float64) (Obstacle, float64, bool) {
	var best Obstacle
	bestDist := 0.0
	found := false
	for _, o := range f.Obstacles {
		cx, cy := o.Center()
		d := Distance(x, y, cx, cy)
		if !found || d < bestDist {
			best = o
			bestDist = d
			found = true
		}
	}
	return best, bestDist, found
}

// FieldConfig controls obstacle generation.
type FieldConfig struct {
	Width, Height    float64
	Rects            int
	Circles          int
	Ellipses         int
	MinSize, MaxSize float64 // extent range per axis
	Margin           float64 // keep-out band along the edges
	SafeX, SafeY     float64 // spawn-safe disc center
	SafeRadius       float64
}

const placementAttempts = 30

// Generate builds a field with a randomized obstacle mix. Placements that
// land in the edge margin, the spawn-safe disc, or on another obstacle are
// retried a bounded number of times; an unplaceable obstacle is skipped.
func Generate(cfg FieldConfig, rng *rand.Rand) *Field {
	f := &Field{Width: cfg.Width, Height: cfg.Height}

	span := func() float64 {
		return cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
	}

	place := func(make func() Obstacle) {
		for i := 0; i < placementAttempts; i++ {
			o := make()
			cx, cy := o.Center()
			if Distance(cx, cy, cfg.SafeX, cfg.SafeY) < cfg.SafeRadius {
				continue
			}
			if o.HitsCircle(cfg.SafeX, cfg.SafeY, cfg.SafeRadius) {
				continue
			}
			overlaps := false
			for _, prev := range f.Obstacles {
				px, py := prev.Center()
				if o.HitsCircle(px, py, obstacleGap(prev)) {
					overlaps = true
					break
				}
			}
			if overlaps {
				continue
			}
			f.Obstacles = append(f.Obstacles, o)
			return
		}
	}

	inX := func(w float64) float64 {
		return cfg.Margin + rng.Float64()*(cfg.Width-2*cfg.Margin-w)
	}
	inY := func(h float64) float64 {
		return cfg.Margin + rng.Float64()*(cfg.Height-2*cfg.Margin-h)
	}

	for i := 0; i < cfg.Rects; i++ {
		place(func() Obstacle {
			w, h := span(), span()
			return Rect(inX(w), inY(h), w, h)
		})
	}
	for i := 0; i < cfg.Circles; i++ {
		place(func() Obstacle {
			r := span() / 2
			return Circle(inX(2*r)+r, inY(2*r)+r, r)
		})
	}
	for i := 0; i < cfg.Ellipses; i++ {
		place(func() Obstacle {
			rx, ry := span()/2, span()/2
			return Ellipse(inX(2*rx)+rx, inY(2*ry)+ry, rx, ry)
		})
	}

	return f
}

// obstacleGap approximates the clearance to keep between obstacle centers.
func obstacleGap(o Obstacle) float64 {
	switch o.Kind {
	case KindRect:
		if o.W > o.H {
			return o.W / 2
		}
		return o.H / 2
	case KindCircle:
		return o.R
	default:
		if o.RX > o.RY {
			return o.RX
		}
		return o.RY
	}
}
