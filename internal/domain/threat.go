package domain

// Category enumerates the heuristic threat categories.
type Category string

const (
	CategoryCrime   Category = "crime"
	CategoryNatural Category = "natural"
	CategoryRiot    Category = "riot"
	CategoryTraffic Category = "traffic"
	CategoryFire    Category = "fire"
	CategoryMedical Category = "medical"
	CategoryOther   Category = "other"
)

// Level enumerates threat severities.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ThreatRecord is the uniform threat shape served to the frontend.
// AffectedPeople is simulated; no real data source backs it.
type ThreatRecord struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	Category       Category `json:"category"`
	Level          Level    `json:"level"`
	Timestamp      string   `json:"timestamp"`
	Summary        string   `json:"summary"`
	AffectedPeople int      `json:"affectedPeople"`
	AIAdvice       []string `json:"aiAdvice"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
}

// ThreatDetail is the placeholder payload of the detail endpoint.
type ThreatDetail struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	Category       Category `json:"category"`
	Level          Level    `json:"level"`
	Timestamp      string   `json:"timestamp"`
	Summary        string   `json:"summary"`
	AffectedPeople int      `json:"affectedPeople"`
	AIAdvice       []string `json:"aiAdvice"`
	TrendData      []int    `json:"trend_data"`
}

// ConfirmedThreat is produced by the offline confirmation job only.
type ConfirmedThreat struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Confidence float64 `json:"confidence"`
	Advice     string  `json:"advice"`
}
