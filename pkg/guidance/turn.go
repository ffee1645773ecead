package guidance

import "math"

const (
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	U_TURN             = 8
)

/*
alignBearing. delta between two headings folded into (-180, 180].

	prev 20°, next 350°: raw delta -330° but the road bends left by 30°, so the answer is -30°.
*/
func alignBearing(prevBearing, bearing float64) float64 {
	delta := math.Mod(bearing-prevBearing, 360.0)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}

// getTurnDirection. classify the heading change between two consecutive legs. bearings in degrees.
func getTurnDirection(prevBearing, bearing float64) int {
	delta := alignBearing(prevBearing, bearing)
	deltaDegree := math.Abs(delta)
	switch {
	case deltaDegree < 12:
		return CONTINUE_ON_STREET
	case deltaDegree < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case deltaDegree < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case deltaDegree < 170:
		if delta < 0 {
			return TURN_SHARP_LEFT
		}
		return TURN_SHARP_RIGHT
	default:
		return U_TURN
	}
}

func turnDescription(turn int) (string, string) {
	switch turn {
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	case U_TURN:
		return "Make U-turn", "U_TURN"
	default:
		return "Continue", "CONTINUE_ON_STREET"
	}
}

// cardinal. compass name of a heading.
func cardinal(bearing float64) string {
	names := []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
	i := int(math.Mod(bearing+22.5, 360.0) / 45.0)
	return names[i%len(names)]
}
