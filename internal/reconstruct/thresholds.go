package reconstruct

// ThresholdMode selects how spacing thresholds are interpreted
type ThresholdMode string

const (
	// ModeRatio scales thresholds by the line's typical character spacing
	ModeRatio ThresholdMode = "ratio"
	// ModeAbsolute uses fixed distances in page units (legacy)
	ModeAbsolute ThresholdMode = "absolute"

	// DefaultAddSpaceRatio is the gap-to-spacing ratio above which a
	// missing space is inserted between adjacent characters.
	DefaultAddSpaceRatio = 1.1
	// DefaultMinSpaceRatio is the gap-to-spacing ratio a literal space
	// must clear to be kept.
	DefaultMinSpaceRatio = 1.3

	// fallbackCharSpacing approximates adjacent-glyph center distance for
	// a typical 12pt font, used when a line is too short to measure.
	fallbackCharSpacing = 4.8
)

// Thresholds is the tagged spacing configuration resolved once per
// document. The two modes are never mixed: ratio values are ignored in
// absolute mode and vice versa.
type Thresholds struct {
	Mode ThresholdMode

	AddSpaceRatio float64
	MinSpaceRatio float64

	AddSpaceDistance float64
	MinSpaceDistance float64
}

// RatioThresholds returns adaptive thresholds that scale with the
// measured character spacing of each line. Zero values fall back to the
// defaults.
func RatioThresholds(addRatio, minRatio float64) Thresholds {
	if addRatio <= 0 {
		addRatio = DefaultAddSpaceRatio
	}
	if minRatio <= 0 {
		minRatio = DefaultMinSpaceRatio
	}
	return Thresholds{Mode: ModeRatio, AddSpaceRatio: addRatio, MinSpaceRatio: minRatio}
}

// AbsoluteThresholds returns fixed-distance thresholds in page units
func AbsoluteThresholds(addDistance, minDistance float64) Thresholds {
	return Thresholds{Mode: ModeAbsolute, AddSpaceDistance: addDistance, MinSpaceDistance: minDistance}
}

// resolve converts the thresholds into concrete distances for a line,
// given the line's measured center-to-center character spacing.
func (t Thresholds) resolve(charSpacing float64) (addDistance, minDistance float64) {
	if t.Mode == ModeAbsolute {
		return t.AddSpaceDistance, t.MinSpaceDistance
	}
	return charSpacing * t.AddSpaceRatio, charSpacing * t.MinSpaceRatio
}
