package costfunction

type Severity uint8

const (
	SEVERITY_NORMAL Severity = iota
	SEVERITY_LOW
	SEVERITY_MEDIUM
	SEVERITY_IMPASSABLE
)

func (s Severity) IsImpassable() bool {
	return s >= SEVERITY_IMPASSABLE
}

func (s Severity) Valid() bool {
	return s <= SEVERITY_IMPASSABLE
}

type NoFlood struct{}

func (NoFlood) GetSeverity(string) Severity {
	return SEVERITY_NORMAL
}

// SeverityMap. plain road id -> severity table.
type SeverityMap map[string]Severity

func (m SeverityMap) GetSeverity(roadId string) Severity {
	return m[roadId]
}
