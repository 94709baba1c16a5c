package trackers

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Reward tracks and saves the active policy's average reward after
// every update cycle, producing the learning curve of a session.
type Reward struct {
	averageRewards []float64
	filename       string
}

// NewReward creates and returns a new *Reward Tracker which saves its
// data to filename.
func NewReward(filename string) Tracker {
	return &Reward{filename: filename}
}

// Track records the average reward observed after an update cycle.
func (r *Reward) Track(averageReward float64) {
	r.averageRewards = append(r.averageRewards, averageReward)
}

// Save saves the data tracked by the Reward Tracker to disk.
func (r *Reward) Save() error {
	file, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err := en.Encode(r.averageRewards); err != nil {
		return fmt.Errorf("save: could not encode reward data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Reward Tracker.
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaddata: could not open file: %v", err)
	}
	defer file.Close()

	var data []float64
	de := gob.NewDecoder(file)
	if err := de.Decode(&data); err != nil {
		return nil, fmt.Errorf("loaddata: could not decode reward "+
			"data: %v", err)
	}
	return data, nil
}
