package datastructure

import (
	"github.com/lintang-b-s/floodnav/pkg"
)

// RoadLengths. read only road id -> physical length table.
type RoadLengths struct {
	lengths map[string]float64
}

func NewRoadLengths(lengths map[string]float64) *RoadLengths {
	cp := make(map[string]float64, len(lengths))
	for k, v := range lengths {
		cp[k] = v
	}
	return &RoadLengths{lengths: cp}
}

// GetLength. unknown and negative lengths fall back to pkg.DEFAULT_ROAD_LENGTH.
func (rl *RoadLengths) GetLength(roadId string) float64 {
	if rl == nil {
		return pkg.DEFAULT_ROAD_LENGTH
	}
	l, ok := rl.lengths[roadId]
	if !ok || l < 0 {
		return pkg.DEFAULT_ROAD_LENGTH
	}
	return l
}

func (rl *RoadLengths) Has(roadId string) bool {
	if rl == nil {
		return false
	}
	_, ok := rl.lengths[roadId]
	return ok
}

func (rl *RoadLengths) Len() int {
	if rl == nil {
		return 0
	}
	return len(rl.lengths)
}
