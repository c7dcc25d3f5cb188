package dto

// DashboardTotals aggregates the whole session collection.
type DashboardTotals struct {
	Sessions          int `json:"sessions"`
	Questions         int `json:"questions"`
	Correct           int `json:"correct"`
	AveragePercentage int `json:"averagePercentage"`
}

// SubjectScore is one bar of the per-subject performance chart.
type SubjectScore struct {
	SubjectName string `json:"subjectName"`
	Percentage  int    `json:"percentage"`
}

// EvolutionPoint is one point of the chronological score chart.
type EvolutionPoint struct {
	Date       string `json:"date"`
	Percentage int    `json:"percentage"`
}

// DashboardResponse is the aggregate performance payload.
type DashboardResponse struct {
	Totals        DashboardTotals  `json:"totals"`
	BestSubject   string           `json:"bestSubject"`
	SubjectSeries []SubjectScore   `json:"subjectSeries"`
	Evolution     []EvolutionPoint `json:"evolution"`
}
