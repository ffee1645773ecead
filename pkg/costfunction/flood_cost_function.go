package costfunction

import (
	"github.com/lintang-b-s/floodnav/pkg"
)

// OptimalCostFunction. physical length, any passable severity costs the same.
type OptimalCostFunction struct{}

func NewOptimalCostFunction() OptimalCostFunction {
	return OptimalCostFunction{}
}

func (OptimalCostFunction) GetWeight(e EdgeAttributes, severity Severity) (float64, bool) {
	if severity.IsImpassable() {
		return pkg.INF_WEIGHT, false
	}
	return e.GetLength(), true
}

func (OptimalCostFunction) GetPolicy() Policy {
	return OPTIMAL
}

// SafeCostFunction. length scaled by the flood severity of the road, severity 2 roads are only taken
// when every alternative is more than ten times longer.
type SafeCostFunction struct{}

func NewSafeCostFunction() SafeCostFunction {
	return SafeCostFunction{}
}

func (SafeCostFunction) GetWeight(e EdgeAttributes, severity Severity) (float64, bool) {
	switch severity {
	case SEVERITY_NORMAL:
		return e.GetLength(), true
	case SEVERITY_LOW:
		return e.GetLength() * pkg.SAFE_MULTIPLIER_SEVERITY_1, true
	case SEVERITY_MEDIUM:
		return e.GetLength() * pkg.SAFE_MULTIPLIER_SEVERITY_2, true
	default:
		return pkg.INF_WEIGHT, false
	}
}

func (SafeCostFunction) GetPolicy() Policy {
	return SAFE
}
