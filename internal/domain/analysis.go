package domain

// StructuredAnalysis es la evaluación del CV contra la oferta devuelta por el servicio de IA.
type StructuredAnalysis struct {
	MatchScore          float64         `json:"match_score"`
	SalaryRange         string          `json:"salary_range"`
	MissingHardSkills   []string        `json:"missing_hard_skills"`
	InterviewQuestions  []string        `json:"interview_questions"`
	PowerWordSwaps      []PowerWordSwap `json:"power_word_swaps"`
	CVImprovements      []CVImprovement `json:"cv_improvements"`
	PotentialMatchScore int             `json:"potential_match_score"`
}

type PowerWordSwap struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Context     string `json:"context"`
}

type CVImprovement struct {
	Current  string `json:"current"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// CompanyIntel agrupa la investigación de la empresa para preparar la entrevista.
type CompanyIntel struct {
	CompanyName          string               `json:"company_name"`
	FinancialPerformance FinancialPerformance `json:"financial_performance"`
	RecentNews           []NewsItem           `json:"recent_news"`
	InterviewDeepDive    []string             `json:"interview_deep_dive"`
}

type FinancialPerformance struct {
	MarketPosition  string `json:"market_position"`
	FinancialHealth string `json:"financial_health"`
	KeyMetrics      string `json:"key_metrics"`
}

type NewsItem struct {
	Headline     string `json:"headline"`
	Summary      string `json:"summary"`
	Significance string `json:"significance"`
}
