// Package physics integrates a single rigid rectangle under force, velocity,
// drag and wall-clock time steps, resolving collisions axis by axis.
package physics

import (
	"time"

	"github.com/vovakirdan/hakusyu/internal/core"
)

// Clock returns the current wall time. Tests substitute a manual clock.
type Clock func() time.Time

// Obstacles is an ordered sequence of solid boxes, nearest (leftmost) first.
type Obstacles interface {
	Len() int
	Box(i int) core.Rect
}

// Rects adapts a plain slice to Obstacles.
type Rects []core.Rect

// Len returns the number of boxes.
func (r Rects) Len() int { return len(r) }

// Box returns the i-th box.
func (r Rects) Box(i int) core.Rect { return r[i] }

// Bounds is the vertical extent of the play area.
type Bounds struct {
	Top    int
	Bottom int
}

// HitResult describes the outcome of one Update.
type HitResult struct {
	block    int
	hasBlock bool

	LowerBorder bool // Body reached or passed the bottom of the play area
	UpperBorder bool // Body reached or passed the top of the play area
}

// Block returns the index of the obstacle that was hit, if any.
func (r HitResult) Block() (int, bool) {
	return r.block, r.hasBlock
}

// Border returns true if either border was reached.
func (r HitResult) Border() bool {
	return r.LowerBorder || r.UpperBorder
}

func (r *HitResult) setBlock(i int) {
	r.block = i
	r.hasBlock = true
}

// Body is a rectangle integrated with the trapezoidal rule.
// Force and drag persist across updates until Init is called again.
type Body struct {
	box    core.Rect
	vx, vy float64
	fx, fy float64
	dragX  float64
	dragY  float64
	deltaX int
	deltaY int
	last   time.Time
	bounds Bounds
	now    Clock
}

// NewBody creates a body that reads time from now and reports borders
// against bounds. A nil clock uses time.Now.
func NewBody(now Clock, bounds Bounds) *Body {
	if now == nil {
		now = time.Now
	}
	return &Body{now: now, bounds: bounds}
}

// Init places the body at box, clears all motion state and restarts the timer.
func (b *Body) Init(box core.Rect) {
	b.box = box
	b.vx, b.vy = 0, 0
	b.fx, b.fy = 0, 0
	b.dragX, b.dragY = 0, 0
	b.deltaX, b.deltaY = 0, 0
	b.last = b.now()
}

// ApplyForce adds a persistent acceleration source such as gravity.
func (b *Body) ApplyForce(fx, fy float64) {
	b.fx += fx
	b.fy += fy
}

// ApplyImpulse adds instantaneous velocity.
func (b *Body) ApplyImpulse(vx, vy float64) {
	b.vx += vx
	b.vy += vy
}

// SetDrag sets the quadratic drag coefficients for each axis.
func (b *Body) SetDrag(dragX, dragY float64) {
	b.dragX = dragX
	b.dragY = dragY
}

// Update advances the body by the wall time elapsed since the previous call.
//
// Each axis is probed separately with the other axis held at its old value.
// An axis whose probe intersects an obstacle keeps its old position and loses
// its velocity. The vertical move is applied to the body; the horizontal move
// is only reported through DeltaX so the caller can scroll the world instead.
func (b *Body) Update(obstacles Obstacles) HitResult {
	var result HitResult

	current := b.now()
	dt := current.Sub(b.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	b.last = current

	newVX := b.vx + (b.fx-sign(b.vx)*b.dragX*b.vx*b.vx)*dt
	newVY := b.vy + (b.fy-sign(b.vy)*b.dragY*b.vy*b.vy)*dt

	newX := int(float64(b.box.X) + (newVX+b.vx)*0.5*dt)
	newY := int(float64(b.box.Y) + (newVY+b.vy)*0.5*dt)

	probe := core.NewRect(newX, b.box.Y, b.box.W, b.box.H)
	if i, ok := firstHit(probe, obstacles); ok {
		result.setBlock(i)
		newX = b.box.X
		newVX = 0
	}

	probe = core.NewRect(b.box.X, newY, b.box.W, b.box.H)
	if i, ok := firstHit(probe, obstacles); ok {
		result.setBlock(i)
		newY = b.box.Y
		newVY = 0
	}

	b.deltaX = newX - b.box.X
	b.deltaY = newY - b.box.Y
	b.box.Y = newY
	b.vx = newVX
	b.vy = newVY

	if b.box.Y >= b.bounds.Bottom {
		result.LowerBorder = true
	}
	if b.box.Y <= b.bounds.Top {
		result.UpperBorder = true
	}

	return result
}

// firstHit returns the lowest index whose box intersects probe.
func firstHit(probe core.Rect, obstacles Obstacles) (int, bool) {
	if obstacles == nil {
		return 0, false
	}
	for i := 0; i < obstacles.Len(); i++ {
		if probe.Intersects(obstacles.Box(i)) {
			return i, true
		}
	}
	return 0, false
}

// sign treats zero as positive; the drag term vanishes there anyway.
func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// DeltaX returns the horizontal displacement realized by the last Update.
func (b *Body) DeltaX() int {
	return b.deltaX
}

// DeltaY returns the vertical displacement realized by the last Update.
func (b *Body) DeltaY() int {
	return b.deltaY
}

// Box returns the current box.
func (b *Body) Box() core.Rect {
	return b.box
}

// Velocity returns the current velocity in pixels per second.
func (b *Body) Velocity() (vx, vy float64) {
	return b.vx, b.vy
}

// Force returns the accumulated force.
func (b *Body) Force() (fx, fy float64) {
	return b.fx, b.fy
}
