package routing

import (
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
)

// PathResult. Found=false is the "no route" answer, it is not an error.
// a route from an intersection to itself is found with no roads.
type PathResult struct {
	Roads           []string
	Intersections   []da.Index
	Distance        float64 // physical length of the route
	Cost            float64 // policy weighted cost of the route
	Found           bool
	NumSettledNodes int
}

func Unreachable() PathResult {
	return PathResult{Found: false}
}
