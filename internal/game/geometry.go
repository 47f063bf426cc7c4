package game

import "math"

// Viewport breakpoints and fallbacks, in pixels
const (
	MobileBreakpoint = 640  // Viewports narrower than this are mobile
	TabletBreakpoint = 1024 // Viewports narrower than this (and not mobile) are tablet

	MinViewportWidth  = 320 // Substituted for missing or degenerate widths
	MinViewportHeight = 480 // Substituted for missing or degenerate heights
)

// Playfield dimensions. Desktop uses the base set; the other classes scale
// item and catcher sizes by the same factor as the playfield width.
const (
	BaseFieldWidth    = 350.0
	BaseFieldHeight   = 500.0
	BaseItemSize      = 50.0
	BaseCatcherWidth  = 80.0
	BaseCatcherHeight = 80.0

	MinFieldWidth  = 200.0
	MinFieldHeight = 300.0

	mobilePadding   = 32.0  // 16px either side
	mobileChrome    = 280.0 // Header, HUD and buttons
	mobileMaxHeight = 450.0
	tabletChrome    = 200.0
	tabletMaxHeight = 480.0
)

// ViewportClass buckets viewports into layout classes
type ViewportClass int

const (
	ClassMobile ViewportClass = iota
	ClassTablet
	ClassDesktop
)

func (c ViewportClass) String() string {
	switch c {
	case ClassMobile:
		return "mobile"
	case ClassTablet:
		return "tablet"
	case ClassDesktop:
		return "desktop"
	}
	return "unknown"
}

// Viewport is the host's visible area in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// Geometry is the derived, read-only layout of one playfield. It is always
// replaced wholesale, never edited field by field.
type Geometry struct {
	Class         ViewportClass
	Width         float64
	Height        float64
	ItemSize      float64
	CatcherWidth  float64
	CatcherHeight float64
}

// Sanitized replaces missing, non-finite or non-positive dimensions with the
// minimum safe viewport.
func (v Viewport) Sanitized() Viewport {
	if !usable(v.Width) {
		v.Width = MinViewportWidth
	}
	if !usable(v.Height) {
		v.Height = MinViewportHeight
	}
	return v
}

func usable(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ClassifyViewport returns the layout class for a viewport
func ClassifyViewport(v Viewport) ViewportClass {
	v = v.Sanitized()
	switch {
	case v.Width < MobileBreakpoint:
		return ClassMobile
	case v.Width < TabletBreakpoint:
		return ClassTablet
	default:
		return ClassDesktop
	}
}

// ResolveGeometry derives playfield dimensions from a viewport. It is total:
// every input yields strictly positive dimensions.
func ResolveGeometry(v Viewport) Geometry {
	v = v.Sanitized()
	class := ClassifyViewport(v)

	var width, height float64
	switch class {
	case ClassMobile:
		width = math.Min(v.Width-mobilePadding, BaseFieldWidth)
		height = math.Min(v.Height-mobileChrome, mobileMaxHeight)
	case ClassTablet:
		width = math.Min(v.Width/2, BaseFieldWidth)
		height = math.Min(v.Height-tabletChrome, tabletMaxHeight)
	default:
		width = BaseFieldWidth
		height = BaseFieldHeight
	}

	width = math.Max(width, MinFieldWidth)
	height = math.Max(height, MinFieldHeight)

	scale := width / BaseFieldWidth
	return Geometry{
		Class:         class,
		Width:         width,
		Height:        height,
		ItemSize:      BaseItemSize * scale,
		CatcherWidth:  BaseCatcherWidth * scale,
		CatcherHeight: BaseCatcherHeight * scale,
	}
}

// CatchZoneTop is the y coordinate of the catcher's opening. Items register a
// catch against the drawn mouth of the basket, not its bounding box.
func (g Geometry) CatchZoneTop(openingFraction float64) float64 {
	return g.Height - g.CatcherHeight + openingFraction*g.CatcherHeight
}
