package guidance

import (
	"fmt"
)

// Leg. one hop of a route as seen by the direction builder.
type Leg struct {
	RoadID  string
	From    string
	To      string
	Length  float64
	Bearing float64
}

type DrivingDirection struct {
	Instruction string
	Turn        string
	RoadID      string
	From        string
	Distance    float64
}

type DirectionBuilder struct {
	directions  []DrivingDirection
	prevRoad    string
	prevBearing float64
	cumulative  float64
}

func NewDirectionBuilder() *DirectionBuilder {
	return &DirectionBuilder{
		directions: make([]DrivingDirection, 0),
	}
}

/*
GetDrivingDirections. one instruction per road change.
consecutive legs on the same road are merged, the distance of an instruction is the length driven
until the next instruction.
*/
func (db *DirectionBuilder) GetDrivingDirections(legs []Leg, destination string) []DrivingDirection {
	if len(legs) == 0 {
		return db.directions
	}

	for i, leg := range legs {
		if i == 0 {
			db.directions = append(db.directions, DrivingDirection{
				Instruction: fmt.Sprintf("Head %s on %s", cardinal(leg.Bearing), leg.RoadID),
				Turn:        "DEPART",
				RoadID:      leg.RoadID,
				From:        leg.From,
			})
		} else if leg.RoadID != db.prevRoad {
			db.closeInstruction()
			desc, turn := turnDescription(getTurnDirection(db.prevBearing, leg.Bearing))
			db.directions = append(db.directions, DrivingDirection{
				Instruction: fmt.Sprintf("%s onto %s", desc, leg.RoadID),
				Turn:        turn,
				RoadID:      leg.RoadID,
				From:        leg.From,
			})
		}
		db.cumulative += leg.Length
		db.prevRoad = leg.RoadID
		db.prevBearing = leg.Bearing
	}
	db.closeInstruction()

	db.directions = append(db.directions, DrivingDirection{
		Instruction: fmt.Sprintf("Arrive at %s", destination),
		Turn:        "ARRIVE",
		From:        destination,
	})
	return db.directions
}

func (db *DirectionBuilder) closeInstruction() {
	db.directions[len(db.directions)-1].Distance = db.cumulative
	db.cumulative = 0
}
