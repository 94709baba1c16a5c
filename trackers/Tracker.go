// Package trackers implements functionality for tracking the learning
// curve of an engine across update cycles and saving the tracked data
// to disk.
package trackers

// Tracker tracks a scalar learning signal over the course of a
// learning session. The engine calls Track after every completed
// update cycle.
type Tracker interface {
	// Track records the signal observed after an update cycle
	Track(value float64)

	// Save saves the data tracked so far to disk
	Save() error
}
