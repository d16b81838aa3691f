package service

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"career-coach/internal/domain"
)

const (
	untitledPosition   = "Untitled Position"
	unknownCompany     = "the company"
	maxTitleLength     = 100
	fallbackTitleRunes = 50
	maxCompanyWords    = 5
)

var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:Job Title|Position|Role):\s*([^\n]+)`),
	regexp.MustCompile(`(?im)(?:We are|We're) (?:looking for|seeking|hiring) (?:a|an)?\s*([A-Z][a-zA-Z\s&]+?)(?:\s+(?:to|who|with|at))`),
	regexp.MustCompile(`(?im)^([A-Z][a-zA-Z\s&]+?)\s+(?:at|with|for)`),
}

var companyURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/(?:company|jobs|careers)/([^/]+)`),
	regexp.MustCompile(`(?i)@([^/]+)`),
	regexp.MustCompile(`(?i)company=([^&]+)`),
}

var companyTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:at|with|from)\s+([A-Z][a-zA-Z\s&]+?)(?:\s+(?:is|are|seeks|looking))`),
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s&]+?)\s+(?:is|are)\s+(?:looking|seeking)`),
	regexp.MustCompile(`(?i)About\s+([A-Z][a-zA-Z\s&]+?)(?:\.|,|\n)`),
}

// ExtractJobTitle busca el título del puesto en la descripción.
func ExtractJobTitle(description string) string {
	if description == "" {
		return untitledPosition
	}
	for _, re := range jobTitlePatterns {
		m := re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		if title := strings.TrimSpace(m[1]); len(title) < maxTitleLength {
			return title
		}
	}

	firstLine := strings.TrimSpace(strings.SplitN(description, "\n", 2)[0])
	if firstLine != "" && len(firstLine) < maxTitleLength {
		return truncateRunes(firstLine, fallbackTitleRunes)
	}
	return untitledPosition
}

// ExtractCompanyName prueba primero la URL y después la descripción.
func ExtractCompanyName(jobURL, description string) string {
	if jobURL != "" {
		for _, re := range companyURLPatterns {
			if m := re.FindStringSubmatch(jobURL); m != nil {
				if name := strings.TrimSpace(titleCase(strings.ReplaceAll(m[1], "-", " "))); name != "" {
					return name
				}
			}
		}
	}

	if description != "" {
		for _, re := range companyTextPatterns {
			m := re.FindStringSubmatch(description)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			if len(strings.Fields(name)) <= maxCompanyWords && !isArticle(name) {
				return name
			}
		}
	}
	return unknownCompany
}

func isArticle(s string) bool {
	switch strings.ToLower(s) {
	case "the", "a", "an":
		return true
	}
	return false
}

// titleCase pone en mayúscula la primera letra de cada palabra y el resto en minúscula.
func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		sb.WriteRune(r)
		prevLetter = false
	}
	return sb.String()
}

// PotentialMatchScore estima el score alcanzable si se aplican las sugerencias.
func PotentialMatchScore(a domain.StructuredAnalysis) int {
	current := a.MatchScore
	improvement := 0.0
	if n := len(a.MissingHardSkills); n > 0 {
		improvement += math.Min(float64(n)*2, 15)
	}
	if n := len(a.CVImprovements); n > 0 {
		improvement += math.Min(float64(n)*1.5, 10)
	}
	if n := len(a.PowerWordSwaps); n > 0 {
		improvement += math.Min(float64(n)*0.5, 5)
	}

	potential := math.Min(current+improvement, 100)
	hasSuggestions := len(a.MissingHardSkills) > 0 || len(a.CVImprovements) > 0 || len(a.PowerWordSwaps) > 0
	if hasSuggestions && potential <= current {
		potential = math.Min(current+5, 100)
	}
	return int(math.RoundToEven(potential))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
