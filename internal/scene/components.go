package scene

// ECS components for the particle world. Every particle entity carries a
// Position plus exactly one of the kind-specific components below.

// Position is a logical-pixel coordinate.
type Position struct {
	X, Y float64
}

// StarKind distinguishes flared stars from plain ones.
type StarKind uint8

const (
	StarNormal StarKind = iota
	StarBright
)

// Twinkler is the per-star state of the starfield.
type Twinkler struct {
	Radius     float64
	Speed      float64 // downward drift per frame
	Phase      float64 // twinkle phase, radians
	Brightness float64
	Kind       StarKind
}

// Meteor is the per-instance state of a shooting star.
type Meteor struct {
	VX, VY  float64
	Opacity float64
	Trail   Trail
}

// Cloud is the per-instance state of a nebula cloud.
type Cloud struct {
	Radius float64
	Hue    float64
	Drift  float64
}
