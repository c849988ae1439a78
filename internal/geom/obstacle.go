package geom

import "encoding/json"

type ObstacleKind int

const (
	KindRect ObstacleKind = iota
	KindCircle
	KindEllipse
)

func (k ObstacleKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ObstacleKind as a string.
func (k ObstacleKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes ObstacleKind from a string.
func (k *ObstacleKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "circle":
		*k = KindCircle
	case "ellipse":
		*k = KindEllipse
	default:
		*k = KindRect
	}
	return nil
}

// Obstacle is one static solid shape. Rectangles are stored by top-left
// corner and size, circles and ellipses by center and radii.
type Obstacle struct {
	Kind ObstacleKind `json:"kind"`
	X    float64      `json:"x,omitempty"`
	Y    float64      `json:"y,omitempty"`
	W    float64      `json:"w,omitempty"`
	H    float64      `json:"h,omitempty"`
	CX   float64      `json:"cx,omitempty"`
	CY   float64      `json:"cy,omitempty"`
	R    float64      `json:"r,omitempty"`
	RX   float64      `json:"rx,omitempty"`
	RY   float64      `json:"ry,omitempty"`
}

func Rect(x, y, w, h float64) Obstacle {
	return Obstacle{Kind: KindRect, X: x, Y: y, W: w, H: h}
}

func Circle(cx, cy, r float64) Obstacle {
	return Obstacle{Kind: KindCircle, CX: cx, CY: cy, R: r}
}

func Ellipse(cx, cy, rx, ry float64) Obstacle {
	return Obstacle{Kind: KindEllipse, CX: cx, CY: cy, RX: rx, RY: ry}
}

// HitsCircle reports whether a circle at (cx, cy) with radius r overlaps
// this obstacle. Rectangles use nearest-point distance, circles use summed
// radii, ellipses use normalized-axis distance with radius-inflated axes.
func (o Obstacle) HitsCircle(cx, cy, r float64) bool {
	switch o.Kind {
	case KindRect:
		nx := clamp(cx, o.X, o.X+o.W)
		ny := clamp(cy, o.Y, o.Y+o.H)
		dx := cx - nx
		dy := cy - ny
		return dx*dx+dy*dy < r*r
	case KindCircle:
		dx := cx - o.CX
		dy := cy - o.CY
		rr := r + o.R
		return dx*dx+dy*dy < rr*rr
	case KindEllipse:
		dx := (cx - o.CX) / (o.RX + r)
		dy := (cy - o.CY) / (o.RY + r)
		return dx*dx+dy*dy <= 1
	default:
		return false
	}
}

// Center returns the obstacle's center point, used for repulsion steering.
func (o Obstacle) Center() (float64, float64) {
	if o.Kind == KindRect {
		return o.X + o.W/2, o.Y + o.H/2
	}
	return o.CX, o.CY
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
