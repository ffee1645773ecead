package flood

import (
	"time"

	"github.com/lintang-b-s/floodnav/pkg"
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
)

// Reading. flood level of one road at the time reported by the sensor sheet.
type Reading struct {
	RoadID string                `json:"id"`
	Time   string                `json:"time"`
	Level  costfunction.Severity `json:"level"`
}

// Snapshot. complete set of readings from one refresh. a snapshot replaces the previous one wholesale,
// readings are never merged across refreshes.
type Snapshot struct {
	readings  map[string]Reading
	order     []string
	firstTime string
	fetchedAt time.Time
	err       string
}

func NewSnapshot(readings []Reading, fetchedAt time.Time) *Snapshot {
	s := &Snapshot{
		readings:  make(map[string]Reading, len(readings)),
		order:     make([]string, 0, len(readings)),
		fetchedAt: fetchedAt,
	}
	if len(readings) > 0 {
		s.firstTime = readings[0].Time
	}
	for _, r := range readings {
		if _, ok := s.readings[r.RoadID]; !ok {
			s.order = append(s.order, r.RoadID)
		}
		// later rows of the same road win
		s.readings[r.RoadID] = r
	}
	return s
}

// newFailedSnapshot. empty snapshot carrying the error of the refresh that produced it.
func newFailedSnapshot(err error, fetchedAt time.Time) *Snapshot {
	s := NewSnapshot(nil, fetchedAt)
	if err != nil {
		s.err = err.Error()
	}
	return s
}

// GetSeverity. roads without a reading are normal.
func (s *Snapshot) GetSeverity(roadId string) costfunction.Severity {
	if s == nil {
		return costfunction.SEVERITY_NORMAL
	}
	r, ok := s.readings[roadId]
	if !ok {
		return costfunction.SEVERITY_NORMAL
	}
	return r.Level
}

func (s *Snapshot) GetReading(roadId string) (Reading, bool) {
	if s == nil {
		return Reading{}, false
	}
	r, ok := s.readings[roadId]
	return r, ok
}

// Readings. readings in the order of the source rows.
func (s *Snapshot) Readings() []Reading {
	if s == nil {
		return []Reading{}
	}
	out := make([]Reading, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.readings[id])
	}
	return out
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.readings)
}

// LastUpdateTime. time column of the first row, the sheet writes one timestamp for the whole batch.
func (s *Snapshot) LastUpdateTime() string {
	if s == nil || len(s.order) == 0 {
		return pkg.NO_UPDATE_TIME
	}
	return s.firstTime
}

func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.fetchedAt
}

func (s *Snapshot) Err() string {
	if s == nil {
		return ""
	}
	return s.err
}

var _ costfunction.SeverityLookup = (*Snapshot)(nil)
