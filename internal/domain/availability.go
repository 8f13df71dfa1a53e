package domain

import "github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"

// Interval is a half-open [Start, End) time-of-day interval
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if both bounds parse and Start < End
func (i Interval) IsValid() bool {
	return i.Start.Validate() == nil && i.End.Validate() == nil && i.Start.IsBefore(i.End)
}

// Overlaps reports whether two half-open intervals intersect. Touching bounds do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// ContainsTime reports whether t falls in [Start, End)
func (i Interval) ContainsTime(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// Within reports whether i lies entirely inside outer
func (i Interval) Within(outer Interval) bool {
	return !i.Start.IsBefore(outer.Start) && !i.End.IsAfter(outer.End)
}

// WindowSource tells which rule produced a window
type WindowSource string

const (
	SourceException WindowSource = "exception"
	SourceLeave     WindowSource = "leave"
	SourceSaturday  WindowSource = "saturday"
	SourceClosed    WindowSource = "closed"
	SourceDefault   WindowSource = "default"
)

// Window is a professional's bookable interval for a date
type Window struct {
	Start       types.TimeString
	End         types.TimeString
	IsException bool
	IsLeave     bool
	// Available is false for leave and for Saturdays without an active professional config
	Available bool
	Source    WindowSource
	// Lunch is an optional carve-out, labelled "lunch" rather than "closed"
	Lunch *Interval
}

// Interval returns the window bounds
func (w *Window) Interval() Interval {
	return Interval{Start: w.Start, End: w.End}
}
