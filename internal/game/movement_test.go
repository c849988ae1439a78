package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonwoo/harvesters-server/internal/geom"
)

func testTuning() Tuning {
	t := DefaultTuning()
	t.StartEnemies = 0
	return t
}

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// openWorld builds a world over an obstacle-free field.
func openWorld(t Tuning, w, h float64) *World {
	return NewWorldWithField(t, &geom.Field{Width: w, Height: h}, newTestRNG())
}

func TestMoveActor_DegenerateDirection(t *testing.T) {
	w := openWorld(testTuning(), 400, 400)

	tests := []struct {
		name string
		dir  geom.Vec2
	}{
		{"zero", geom.Vec2{}},
		{"nan", geom.Vec2{X: math.NaN(), Y: 1}},
		{"inf", geom.Vec2{X: math.Inf(-1), Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Actor{X: 200, Y: 200, Radius: 10}
			moved := w.moveActor(&a, tt.dir, 5)
			assert.Zero(t, moved)
			assert.Equal(t, 200.0, a.X)
			assert.Equal(t, 200.0, a.Y)
		})
	}
}

func TestMoveActor_ClampsToBounds(t *testing.T) {
	w := openWorld(testTuning(), 400, 400)

	a := Actor{X: 395, Y: 200, Radius: 10}
	w.moveActor(&a, geom.Vec2{X: 1, Y: 0}, 20)

	assert.Equal(t, 390.0, a.X, "clamped to width minus radius")
	assert.Equal(t, 200.0, a.Y)
}

func TestMoveActor_SlidesAlongWall(t *testing.T) {
	tun := testTuning()
	field := &geom.Field{
		Width:  400,
		Height: 400,
		Obstacles: []geom.Obstacle{
			geom.Rect(220, 0, 40, 400), // full-height wall to the right
		},
	}
	w := NewWorldWithField(tun, field, rand.New(rand.NewSource(1)))

	a := Actor{X: 205, Y: 200, Radius: 10}
	moved := w.moveActor(&a, geom.Vec2{X: 1, Y: 1}, 10)

	// X is blocked by the wall, Y still advances: the actor slides.
	assert.Greater(t, moved, 0.0)
	assert.Equal(t, 205.0, a.X)
	assert.Greater(t, a.Y, 200.0)
	assert.False(t, field.Blocked(a.X, a.Y, a.Radius))
}

func TestMoveActor_PerpendicularEscape(t *testing.T) {
	// Dead-end corridor: straight ahead and the diagonal are blocked, but a
	// perpendicular step is open.
	field := &geom.Field{
		Width:  400,
		Height: 400,
		Obstacles: []geom.Obstacle{
			geom.Rect(220, 150, 40, 100), // wall ahead
		},
	}
	w := NewWorldWithField(testTuning(), field, rand.New(rand.NewSource(1)))

	a := Actor{X: 205, Y: 200, Radius: 10}
	moved := w.moveActor(&a, geom.Vec2{X: 1, Y: 0}, 8)

	require.Greater(t, moved, 0.0, "actor escapes via perpendicular offset")
	assert.NotEqual(t, 200.0, a.Y)
	assert.False(t, field.Blocked(a.X, a.Y, a.Radius))
}

// Positions stay legal over a long random walk: always in bounds, never
// intersecting the obstacle field.
func TestStep_PositionsAlwaysLegal(t *testing.T) {
	tun := testTuning()
	tun.StartEnemies = 2
	rng := rand.New(rand.NewSource(99))
	w := NewWorld(tun, rng)

	p := w.NewPlayer("walker")
	w.SpawnBot(p.ID, BotResource)

	checkActor := func(a *Actor, what string) {
		assert.GreaterOrEqual(t, a.X, a.Radius, what)
		assert.LessOrEqual(t, a.X, tun.WorldWidth-a.Radius, what)
		assert.GreaterOrEqual(t, a.Y, a.Radius, what)
		assert.LessOrEqual(t, a.Y, tun.WorldHeight-a.Radius, what)
	}

	for i := 0; i < 300; i++ {
		w.SetDirection(p.ID, geom.Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1})
		w.Step()

		checkActor(&p.Actor, "player")
		assert.False(t, w.field.Blocked(p.X, p.Y, p.Radius), "player inside obstacle at tick %d", i)
		for _, b := range w.bots {
			checkActor(&b.Actor, "bot")
		}
		for _, e := range w.enemies {
			checkActor(&e.Actor, "enemy")
		}
	}
}
