package core

import "testing"

func TestCollide(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Rect
		wantX bool
		wantY bool
	}{
		{
			name:  "overlapping rects",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(5, 5, 10, 10),
			wantX: true,
			wantY: true,
		},
		{
			name:  "separated horizontally, same row",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(15, 0, 10, 10),
			wantX: false,
			wantY: true,
		},
		{
			name:  "separated vertically, same column",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(0, 15, 10, 10),
			wantX: true,
			wantY: false,
		},
		{
			name:  "touching right edge",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(10, 0, 10, 10),
			wantX: false,
			wantY: true,
		},
		{
			name:  "resting on top",
			a:     NewRect(3, 0, 4, 10),
			b:     NewRect(0, 10, 10, 10),
			wantX: true,
			wantY: false,
		},
		{
			name:  "contained rect",
			a:     NewRect(0, 0, 20, 20),
			b:     NewRect(5, 5, 5, 5),
			wantX: true,
			wantY: true,
		},
		{
			name:  "single pixel overlap",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(9, 9, 10, 10),
			wantX: true,
			wantY: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Collide(tc.a, tc.b)
			if got.X != tc.wantX || got.Y != tc.wantY {
				t.Errorf("Collide() = %+v, expected {X:%v Y:%v}", got, tc.wantX, tc.wantY)
			}
			// Also test symmetry
			rev := Collide(tc.b, tc.a)
			if rev != got {
				t.Errorf("Collide() (reversed) = %+v, expected %+v", rev, got)
			}
			if tc.a.Intersects(tc.b) != (tc.wantX && tc.wantY) {
				t.Errorf("Intersects() = %v, expected %v", tc.a.Intersects(tc.b), tc.wantX && tc.wantY)
			}
		})
	}
}

func TestCollideTouchingNeverOverlapsX(t *testing.T) {
	for w := 1; w < 20; w++ {
		for x := -10; x < 10; x++ {
			a := NewRect(x, 0, w, 5)
			b := NewRect(a.Right(), 0, 7, 5)
			if Collide(a, b).X {
				t.Fatalf("touching boxes %+v %+v reported X overlap", a, b)
			}
		}
	}
}

func TestCollideStrictOverlapX(t *testing.T) {
	a := NewRect(0, 0, 10, 4)
	for bx := -9; bx < 10; bx++ {
		b := NewRect(bx, 0, 10, 4)
		if !Collide(a, b).X {
			t.Errorf("Collide(%+v, %+v).X = false, expected true", a, b)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-5.5, 0.0, 1.0, 0.0},
		{15.5, 0.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
