package costfunction

import (
	"errors"
	"fmt"
	"strings"
)

type EdgeAttributes interface {
	GetRoadId() string
	GetLength() float64
}

// SeverityLookup. current flood severity per road id. roads without a reading are SEVERITY_NORMAL.
type SeverityLookup interface {
	GetSeverity(roadId string) Severity
}

type CostFunction interface {
	// GetWeight. traversal weight of the edge and whether it can be traversed at all.
	GetWeight(e EdgeAttributes, severity Severity) (float64, bool)
	GetPolicy() Policy
}

type Policy uint8

const (
	OPTIMAL Policy = iota
	SAFE
)

var ErrUnknownPolicy = errors.New("unknown routing policy")

func (p Policy) String() string {
	switch p {
	case SAFE:
		return "safe"
	default:
		return "optimal"
	}
}

// ParsePolicy. empty string selects the optimal policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "optimal":
		return OPTIMAL, nil
	case "safe":
		return SAFE, nil
	default:
		return OPTIMAL, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func NewCostFunction(policy Policy) CostFunction {
	switch policy {
	case SAFE:
		return NewSafeCostFunction()
	default:
		return NewOptimalCostFunction()
	}
}
