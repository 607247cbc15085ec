package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutExtraWideWidth gives the history list a narrower share of the screen.
	LayoutExtraWideWidth = 160

	// LayoutMinListWidth is the narrowest the history list gets.
	LayoutMinListWidth = 24
)

// Timing constants.
const (
	// PreviewDebounce is how long the path input must be idle before the
	// local file preview is read.
	PreviewDebounce = 300 * time.Millisecond
)
