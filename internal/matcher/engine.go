package matcher

import (
	"errors"
	"math"
	"strings"
)

var ErrMissingInput = errors.New("cv text and job text are required")

// MaxListedMissing limita cuántas palabras faltantes se citan en la sugerencia.
const MaxListedMissing = 5

var fixedSuggestions = []string{
	"Ensure your CV clearly highlights your most relevant experiences at the top.",
	"Use action verbs and quantify achievements where possible (e.g., 'Increased sales by 25%').",
	"Tailor your CV summary/objective to match the job description's key requirements.",
	"Make sure your CV is well-formatted, easy to read, and free of typos.",
	"Include a skills section that matches the job requirements.",
}

// FixedSuggestions devuelve una copia de las sugerencias que siempre se agregan.
func FixedSuggestions() []string {
	out := make([]string, len(fixedSuggestions))
	copy(out, fixedSuggestions)
	return out
}

// Result es el resultado inmutable de un análisis.
type Result struct {
	MatchScore       float64  `json:"match_score"`
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	Suggestions      []string `json:"suggestions"`
}

// Engine compara un CV contra una oferta. Una instancia por sesión; no es seguro
// para uso concurrente.
type Engine struct {
	cv  normalizedText
	job normalizedText
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) SetCVText(raw string) {
	e.cv = normalize(raw)
}

func (e *Engine) SetJobText(raw string) {
	e.job = normalize(raw)
}

// Analyze recalcula todo el resultado; falla con ErrMissingInput si falta algún texto.
func (e *Engine) Analyze() (Result, error) {
	if e.cv.empty() || e.job.empty() {
		return Result{}, ErrMissingInput
	}

	cvSet := extract(e.cv)
	jobSet := extract(e.job)
	matching := jobSet.Intersect(cvSet)
	missing := jobSet.Difference(cvSet)

	score := 0.0
	if jobSet.Len() > 0 {
		score = math.Round(10000*float64(matching.Len())/float64(jobSet.Len())) / 100
	}

	return Result{
		MatchScore:       score,
		MatchingKeywords: matching.Items(),
		MissingKeywords:  missing.Items(),
		Suggestions:      buildSuggestions(score, missing.Items()),
	}, nil
}

// ScoreBandSuggestion elige el mensaje según la banda; cada límite pertenece a la banda superior.
func ScoreBandSuggestion(score float64) string {
	switch {
	case score < 30:
		return "Your CV has a low match score. Consider highlighting more relevant skills and experiences."
	case score < 50:
		return "Your CV has a moderate match. There's room for improvement to better align with the job requirements."
	case score < 70:
		return "Your CV has a good match. A few enhancements could make it even stronger."
	default:
		return "Your CV has a strong match with the job listing. Great alignment!"
	}
}

func buildSuggestions(score float64, missing []string) []string {
	out := []string{ScoreBandSuggestion(score)}
	if len(missing) > 0 {
		listed := missing
		if len(listed) > MaxListedMissing {
			listed = listed[:MaxListedMissing]
		}
		out = append(out, "Consider adding or emphasizing these keywords from the job listing: "+strings.Join(listed, ", "))
	}
	return append(out, fixedSuggestions...)
}

// Analyze es un atajo sin estado para una sola comparación.
func Analyze(cvText, jobText string) (Result, error) {
	e := NewEngine()
	e.SetCVText(cvText)
	e.SetJobText(jobText)
	return e.Analyze()
}
