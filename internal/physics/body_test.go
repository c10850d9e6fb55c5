package physics

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/hakusyu/internal/core"
)

// manualClock is advanced explicitly by tests.
type manualClock struct {
	t time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Unix(1000, 0)}
}

func (c *manualClock) Now() time.Time { return c.t }

func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var wideBounds = Bounds{Top: -10000, Bottom: 10000}

func TestUpdateAtRest(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	start := core.NewRect(40, 60, 10, 12)
	b.Init(start)

	for _, dt := range []time.Duration{0, time.Millisecond, 16 * time.Millisecond, time.Second, 5 * time.Second} {
		clock.Advance(dt)
		r := b.Update(nil)
		if b.Box() != start {
			t.Errorf("after dt=%v Box() = %+v, expected %+v", dt, b.Box(), start)
		}
		if b.DeltaX() != 0 || b.DeltaY() != 0 {
			t.Errorf("after dt=%v deltas = (%d, %d), expected (0, 0)", dt, b.DeltaX(), b.DeltaY())
		}
		if _, ok := r.Block(); ok {
			t.Errorf("after dt=%v unexpected block hit", dt)
		}
	}
}

func TestUpdateHorizontalCollisionRollsBackX(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 50, 10, 10))
	b.ApplyImpulse(100, -20)

	wall := Rects{core.NewRect(12, 0, 10, 200)}
	clock.Advance(100 * time.Millisecond)
	r := b.Update(wall)

	if i, ok := r.Block(); !ok || i != 0 {
		t.Fatalf("Block() = (%d, %v), expected (0, true)", i, ok)
	}
	if b.Box().X != 0 {
		t.Errorf("Box().X = %d, expected 0", b.Box().X)
	}
	if b.DeltaX() != 0 {
		t.Errorf("DeltaX() = %d, expected 0", b.DeltaX())
	}
	vx, vy := b.Velocity()
	if vx != 0 {
		t.Errorf("vx = %f, expected 0", vx)
	}
	if vy != -20 {
		t.Errorf("vy = %f, expected -20 (x-only collision must not touch vy)", vy)
	}
	if b.Box().Y != 48 {
		t.Errorf("Box().Y = %d, expected 48", b.Box().Y)
	}
}

func TestUpdateLandsOnBlock(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 90, 10, 10))
	b.ApplyForce(0, 500)

	ground := Rects{core.NewRect(0, 100, 50, 50)}
	clock.Advance(100 * time.Millisecond)
	r := b.Update(ground)

	if i, ok := r.Block(); !ok || i != 0 {
		t.Fatalf("Block() = (%d, %v), expected (0, true)", i, ok)
	}
	if b.Box().Y != 90 {
		t.Errorf("Box().Y = %d, expected 90", b.Box().Y)
	}
	if _, vy := b.Velocity(); vy != 0 {
		t.Errorf("vy = %f, expected 0 after landing", vy)
	}
	// Force persists across updates
	if _, fy := b.Force(); fy != 500 {
		t.Errorf("fy = %f, expected 500", fy)
	}
}

func TestUpdateTrapezoidalIntegration(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 200, 10, 10))
	b.ApplyForce(0, 100)

	clock.Advance(time.Second)
	b.Update(nil)

	if _, vy := b.Velocity(); vy != 100 {
		t.Errorf("vy = %f, expected 100", vy)
	}
	if b.Box().Y != 250 {
		t.Errorf("Box().Y = %d, expected 250", b.Box().Y)
	}
	if b.DeltaY() != 50 {
		t.Errorf("DeltaY() = %d, expected 50", b.DeltaY())
	}
}

func TestUpdateDragOpposesMotion(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		wantV  float64
		wantDX int
	}{
		{"moving right", 10, 5, 3},
		{"moving left", -10, -5, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := newManualClock()
			b := NewBody(clock.Now, wideBounds)
			b.Init(core.NewRect(0, 0, 10, 10))
			b.SetDrag(0.1, 0)
			b.ApplyImpulse(tc.v, 0)

			clock.Advance(500 * time.Millisecond)
			b.Update(nil)

			vx, _ := b.Velocity()
			if math.Abs(vx-tc.wantV) > 1e-9 {
				t.Errorf("vx = %f, expected %f", vx, tc.wantV)
			}
			if b.DeltaX() != tc.wantDX {
				t.Errorf("DeltaX() = %d, expected %d", b.DeltaX(), tc.wantDX)
			}
			if b.Box().X != 0 {
				t.Errorf("horizontal motion must not move the box, X = %d", b.Box().X)
			}
		})
	}
}

func TestUpdateBorders(t *testing.T) {
	bounds := Bounds{Top: 0, Bottom: 100}

	tests := []struct {
		name      string
		y         int
		impulseY  float64
		wantLower bool
		wantUpper bool
	}{
		{"in play area", 50, 0, false, false},
		{"at bottom", 100, 0, true, false},
		{"below bottom", 150, 0, true, false},
		{"at top", 0, 0, false, true},
		{"jumps past top", 5, -100, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := newManualClock()
			b := NewBody(clock.Now, bounds)
			b.Init(core.NewRect(0, tc.y, 10, 10))
			b.ApplyImpulse(0, tc.impulseY)

			clock.Advance(100 * time.Millisecond)
			r := b.Update(nil)
			if r.LowerBorder != tc.wantLower || r.UpperBorder != tc.wantUpper {
				t.Errorf("borders = (lower %v, upper %v), expected (%v, %v)",
					r.LowerBorder, r.UpperBorder, tc.wantLower, tc.wantUpper)
			}
			if r.Border() != (tc.wantLower || tc.wantUpper) {
				t.Errorf("Border() = %v", r.Border())
			}
		})
	}
}

func TestUpdateReportsFirstObstacle(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 90, 10, 10))
	b.ApplyForce(0, 500)

	obstacles := Rects{
		core.NewRect(500, 0, 10, 10),
		core.NewRect(0, 100, 5, 50),
		core.NewRect(5, 100, 5, 50),
	}
	clock.Advance(100 * time.Millisecond)
	r := b.Update(obstacles)

	if i, ok := r.Block(); !ok || i != 1 {
		t.Errorf("Block() = (%d, %v), expected (1, true)", i, ok)
	}
}

func TestInitResetsMotion(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 0, 10, 10))
	b.ApplyForce(3, 4)
	b.ApplyImpulse(5, 6)
	b.SetDrag(1, 1)

	b.Init(core.NewRect(1, 2, 3, 4))
	if fx, fy := b.Force(); fx != 0 || fy != 0 {
		t.Errorf("Force() = (%f, %f), expected zero", fx, fy)
	}
	if vx, vy := b.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("Velocity() = (%f, %f), expected zero", vx, vy)
	}
	if b.Box() != core.NewRect(1, 2, 3, 4) {
		t.Errorf("Box() = %+v", b.Box())
	}
}

func TestUpdateClockGoingBackwards(t *testing.T) {
	clock := newManualClock()
	b := NewBody(clock.Now, wideBounds)
	b.Init(core.NewRect(0, 0, 10, 10))
	b.ApplyImpulse(0, 100)

	clock.Advance(-time.Second)
	b.Update(nil)
	if b.Box().Y != 0 {
		t.Errorf("negative dt should not move the body, Y = %d", b.Box().Y)
	}
}
