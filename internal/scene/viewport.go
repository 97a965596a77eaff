package scene

import (
	"fmt"
	"math"
)

// MobileBreakpoint is the widest logical width still classified as mobile.
const MobileBreakpoint = 768

// DeviceClass selects density, trail and speed tuning.
type DeviceClass uint8

const (
	Desktop DeviceClass = iota
	Mobile
)

func (d DeviceClass) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// ClassOf classifies a logical viewport width.
func ClassOf(width float64) DeviceClass {
	if width <= MobileBreakpoint {
		return Mobile
	}
	return Desktop
}

// Theme is the ambient light/dark colour-scheme preference.
type Theme uint8

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q", s)
	}
}

// Viewport is the drawing surface size in logical pixels plus the
// device pixel ratio. One logical pixel covers DPR physical pixels.
type Viewport struct {
	Width  float64
	Height float64
	DPR    float64
}

// Class returns the device class for the viewport width.
func (v Viewport) Class() DeviceClass { return ClassOf(v.Width) }

// Center returns the logical centre of the viewport.
func (v Viewport) Center() (float64, float64) { return v.Width / 2, v.Height / 2 }

// Scale returns the DPR, treating an unset ratio as 1.
func (v Viewport) Scale() float64 {
	if v.DPR <= 0 {
		return 1
	}
	return v.DPR
}

// Physical returns the surface size in physical pixels (at least 1x1).
func (v Viewport) Physical() (int, int) {
	s := v.Scale()
	w := int(math.Round(v.Width * s))
	h := int(math.Round(v.Height * s))
	return max(w, 1), max(h, 1)
}
