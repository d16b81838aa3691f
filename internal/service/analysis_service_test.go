package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/domain"
	"career-coach/internal/llm"
	"career-coach/internal/metrics"
)

const analysisJSON = `{
  "match_score": 62,
  "salary_range": "£45,000 - £55,000",
  "missing_hard_skills": ["kubernetes", "terraform"],
  "interview_questions": ["How have you run containers in production?"],
  "power_word_swaps": [{"original": "helped", "replacement": "spearheaded", "context": "ownership"}],
  "cv_improvements": [{"current": "Did APIs", "improved": "Designed 12 REST APIs", "reason": "quantified"}]
}`

func TestAnalysisService_AnalyzeParsesFencedJSON(t *testing.T) {
	client := &llm.MockClient{Response: "Here you go:\n```json\n" + analysisJSON + "\n```"}
	m := metrics.New()
	svc := NewAnalysisService(client, m, zap.NewNop())

	got, err := svc.Analyze(context.Background(), "Go developer, AWS", "Senior Go engineer with Kubernetes")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.MatchScore != 62 || got.SalaryRange != "£45,000 - £55,000" {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if len(got.MissingHardSkills) != 2 || got.PowerWordSwaps[0].Replacement != "spearheaded" {
		t.Fatalf("unexpected lists: %+v", got)
	}
	// 62 + 4 + 1.5 + 0.5 = 68
	if got.PotentialMatchScore != 68 {
		t.Fatalf("expected potential 68, got %d", got.PotentialMatchScore)
	}
	prompt := client.LastPrompt()
	if !strings.Contains(prompt, "elite UK Headhunter") || !strings.Contains(prompt, "Senior Go engineer") {
		t.Fatalf("unexpected prompt: %s", prompt)
	}
}

func TestAnalysisService_AnalyzeInvalidInput(t *testing.T) {
	client := &llm.MockClient{Response: analysisJSON}
	svc := NewAnalysisService(client, nil, zap.NewNop())

	if _, err := svc.Analyze(context.Background(), "  ", "job"); !errors.Is(err, ErrAIInvalidInput) {
		t.Fatalf("expected ErrAIInvalidInput, got %v", err)
	}
	if len(client.Prompts) != 0 {
		t.Fatalf("expected no llm call on invalid input")
	}
}

func TestAnalysisService_AnalyzeParseError(t *testing.T) {
	svc := NewAnalysisService(&llm.MockClient{Response: "sorry, I cannot help"}, nil, zap.NewNop())
	if _, err := svc.Analyze(context.Background(), "cv", "job"); !errors.Is(err, ErrAIResponseParse) {
		t.Fatalf("expected ErrAIResponseParse, got %v", err)
	}
}

func TestAnalysisService_ProviderErrorWrapped(t *testing.T) {
	svc := NewAnalysisService(&llm.MockClient{Err: llm.ErrCircuitOpen}, nil, zap.NewNop())
	_, err := svc.Analyze(context.Background(), "cv", "job")
	if !errors.Is(err, llm.ErrCircuitOpen) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestAnalysisService_NotConfigured(t *testing.T) {
	svc := NewAnalysisService(nil, nil, nil)
	if _, err := svc.DraftCoverLetter(context.Background(), "cv", "job", nil); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestAnalysisService_AnalyzeStreamEmitsChunks(t *testing.T) {
	half := len(analysisJSON) / 2
	client := &llm.MockClient{Chunks: []string{analysisJSON[:half], analysisJSON[half:]}}
	svc := NewAnalysisService(client, nil, zap.NewNop())

	var chunks []string
	got, err := svc.AnalyzeStream(context.Background(), "cv", "job", func(c string) error {
		chunks = append(chunks, c)
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got.MatchScore != 62 {
		t.Fatalf("expected parsed analysis after stream, got %+v", got)
	}
}

func TestAnalysisService_ResearchDerivesCompanyAndTruncates(t *testing.T) {
	client := &llm.MockClient{Response: `{"financial_performance":{"market_position":"leader"},"recent_news":[],"interview_deep_dive":["Read the About page"]}`}
	svc := NewAnalysisService(client, nil, zap.NewNop())

	desc := strings.Repeat("x", 600)
	intel, err := svc.Research(context.Background(), "", ResearchContext{
		JobURL:         "https://jobs.example.com/company/acme-widgets/123",
		JobDescription: desc,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if intel.CompanyName != "Acme Widgets" {
		t.Fatalf("expected company from url, got %q", intel.CompanyName)
	}
	if intel.FinancialPerformance.MarketPosition != "leader" {
		t.Fatalf("unexpected intel: %+v", intel)
	}
	prompt := client.LastPrompt()
	if strings.Contains(prompt, strings.Repeat("x", 501)) {
		t.Fatalf("expected job description truncated to 500 chars")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 500)) {
		t.Fatalf("expected first 500 chars of job description in prompt")
	}
}

func TestAnalysisService_CoverLetterUsesProfile(t *testing.T) {
	client := &llm.MockClient{Response: "  Dear Hiring Manager,\n...  "}
	svc := NewAnalysisService(client, nil, zap.NewNop())

	profile := &assessment.Profile{
		TopTraits: []assessment.TraitScore{
			{Trait: "organized", Score: 8},
			{Trait: "concise", Score: 8},
			{Trait: "structured", Score: 7},
			{Trait: "leadership", Score: 6},
		},
		CommunicationStyle: "direct and concise",
		WorkStyle:          "structured and organized",
		MotivationStyle:    "results and achievement-driven",
	}
	letter, err := svc.DraftCoverLetter(context.Background(), strings.Repeat("c", 2500), "job", profile)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if letter != "Dear Hiring Manager,\n..." {
		t.Fatalf("expected trimmed letter, got %q", letter)
	}
	prompt := client.LastPrompt()
	if !strings.Contains(prompt, "Top Personality Traits: organized, concise, structured\n") {
		t.Fatalf("expected top 3 traits in prompt: %s", prompt)
	}
	if strings.Contains(prompt, strings.Repeat("c", 2001)) {
		t.Fatalf("expected cv truncated to 2000 chars")
	}
}

func TestAnalysisService_CoverLetterDefaultTone(t *testing.T) {
	client := &llm.MockClient{Response: "letter"}
	svc := NewAnalysisService(client, nil, zap.NewNop())
	if _, err := svc.DraftCoverLetter(context.Background(), "cv", "job", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(client.LastPrompt(), "confident but not overly formal") {
		t.Fatalf("expected default tone context")
	}
}

func TestPotentialMatchScore(t *testing.T) {
	tests := []struct {
		name string
		in   domain.StructuredAnalysis
		want int
	}{
		{"no suggestions", domain.StructuredAnalysis{MatchScore: 70}, 70},
		{"skills capped at 15", domain.StructuredAnalysis{MatchScore: 50, MissingHardSkills: make([]string, 10)}, 65},
		{"all caps", domain.StructuredAnalysis{
			MatchScore:        40,
			MissingHardSkills: make([]string, 8),
			CVImprovements:    make([]domain.CVImprovement, 7),
			PowerWordSwaps:    make([]domain.PowerWordSwap, 12),
		}, 70},
		{"capped at 100", domain.StructuredAnalysis{MatchScore: 98, MissingHardSkills: []string{"go", "k8s"}}, 100},
		{"bumped when already at 100", domain.StructuredAnalysis{MatchScore: 100, CVImprovements: make([]domain.CVImprovement, 1)}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PotentialMatchScore(tt.in); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
