package scene

// Point is a logical-pixel coordinate in a trail.
type Point struct {
	X, Y float64
}

// Trail is a bounded FIFO of recent positions, oldest first.
type Trail struct {
	Points []Point
	maxLen int
}

// NewTrail creates a trail that keeps the most recent maxLen points.
func NewTrail(maxLen int) Trail {
	return Trail{
		Points: make([]Point, 0, maxLen),
		maxLen: maxLen,
	}
}

// Push appends a point, evicting the oldest if full.
func (t *Trail) Push(p Point) {
	if t.maxLen <= 0 {
		return
	}
	if len(t.Points) >= t.maxLen {
		copy(t.Points, t.Points[1:])
		t.Points[len(t.Points)-1] = p
		return
	}
	t.Points = append(t.Points, p)
}

// Reset drops every point but keeps the capacity.
func (t *Trail) Reset() {
	t.Points = t.Points[:0]
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return len(t.Points) }

// Cap returns the maximum number of points kept.
func (t *Trail) Cap() int { return t.maxLen }

// Clone returns a copy that shares no storage with t.
func (t *Trail) Clone() Trail {
	cp := NewTrail(t.maxLen)
	cp.Points = append(cp.Points, t.Points...)
	return cp
}
