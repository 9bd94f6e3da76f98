// Package input turns noisy digital lines into clean logical events.
package input

// DefaultThreshold is the number of consecutive active samples needed
// before a trigger fires, at the 1 kHz logical sampling rate.
const DefaultThreshold = 100

// Line is a digital input read once per sampling tick.
type Line interface {
	// Read reports whether the line is active.
	Read() bool
}

// LineFunc is the func form of Line.
type LineFunc func() bool

// Read implements Line.
func (f LineFunc) Read() bool { return f() }

// Debouncer filters a Line into single trigger events. The counter
// increments while the line reads active and resets on any inactive
// sample; reaching the threshold fires once and resets the counter,
// so a held line cannot re-fire.
type Debouncer struct {
	// Threshold is the consecutive active sample count required.
	// Zero means DefaultThreshold.
	Threshold int

	count int
}

// Sample feeds one tick's reading and reports whether the trigger
// fires on this sample.
func (d *Debouncer) Sample(active bool) bool {
	if !active {
		d.count = 0
		return false
	}
	threshold := d.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	d.count++
	if d.count >= threshold {
		d.count = 0
		return true
	}
	return false
}

// Reset clears the counter, used on node (re)initialization.
func (d *Debouncer) Reset() {
	d.count = 0
}
