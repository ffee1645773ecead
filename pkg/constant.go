package pkg

const (
	INF_WEIGHT float64 = 1e15

	// fallback length for roads that have no recorded length
	DEFAULT_ROAD_LENGTH float64 = 10.0

	SAFE_MULTIPLIER_SEVERITY_1 float64 = 1.5
	SAFE_MULTIPLIER_SEVERITY_2 float64 = 10.0
)

const (
	DEBUG = false
)

const (
	NO_UPDATE_TIME = "---"
)
