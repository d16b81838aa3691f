package matcher

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Vocabulary son los términos técnicos y blandos que se buscan como substring.
var Vocabulary = []string{
	"python", "java", "javascript", "sql", "html", "css", "react", "angular",
	"node.js", "django", "flask", "aws", "azure", "docker", "kubernetes", "git",
	"agile", "scrum", "project management", "leadership", "communication",
	"analytics", "data analysis", "machine learning", "ai", "cloud computing",
	"devops", "ci/cd", "rest api", "microservices", "database", "nosql",
	"excel", "powerpoint", "presentation", "negotiation", "sales", "marketing",
	"finance", "accounting", "design", "ui/ux", "customer service", "teamwork",
}

// Se aplica sobre texto ya colapsado: el único espacio posible es ' '.
var experienceRe = regexp.MustCompile(`\p{Nd}+\+? ?years? ?(?:of ?)?experience`)

const minPhraseLength = 3

// KeywordSet es un conjunto que conserva el orden de inserción.
type KeywordSet struct {
	items []string
	index map[string]struct{}
}

func NewKeywordSet(items ...string) *KeywordSet {
	s := &KeywordSet{index: make(map[string]struct{})}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add agrega el elemento si no estaba; devuelve true si fue nuevo.
func (s *KeywordSet) Add(item string) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *KeywordSet) Contains(item string) bool {
	_, ok := s.index[item]
	return ok
}

func (s *KeywordSet) Len() int { return len(s.items) }

// Items devuelve una copia en orden de inserción.
func (s *KeywordSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Intersect devuelve los elementos de s presentes en other, en el orden de s.
func (s *KeywordSet) Intersect(other *KeywordSet) *KeywordSet {
	out := NewKeywordSet()
	for _, it := range s.items {
		if other.Contains(it) {
			out.Add(it)
		}
	}
	return out
}

// Difference devuelve los elementos de s ausentes en other, en el orden de s.
func (s *KeywordSet) Difference(other *KeywordSet) *KeywordSet {
	out := NewKeywordSet()
	for _, it := range s.items {
		if !other.Contains(it) {
			out.Add(it)
		}
	}
	return out
}

// normalizedText guarda ambas versiones del texto, calculadas una sola vez.
type normalizedText struct {
	original string
	lower    string
}

func normalize(raw string) normalizedText {
	// strings.Fields separa por unicode.IsSpace, así que U+00A0 también colapsa
	collapsed := strings.Join(strings.Fields(raw), " ")
	return normalizedText{original: collapsed, lower: strings.ToLower(collapsed)}
}

func (t normalizedText) empty() bool { return t.original == "" }

// ExtractKeywords une, en este orden, vocabulario, frases capitalizadas y menciones de experiencia.
func ExtractKeywords(raw string) *KeywordSet {
	return extract(normalize(raw))
}

func extract(text normalizedText) *KeywordSet {
	set := NewKeywordSet()
	for _, term := range Vocabulary {
		if strings.Contains(text.lower, term) {
			set.Add(term)
		}
	}
	for _, phrase := range capitalizedPhrases(text.original) {
		phrase = strings.ToLower(phrase)
		if len(phrase) > minPhraseLength {
			set.Add(phrase)
		}
	}
	for _, exp := range experienceRe.FindAllString(text.lower, -1) {
		set.Add(exp)
	}
	return set
}

// isWordRune replica \w de Unicode: letras, marcas, dígitos y '_'.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// boundaryBefore indica si hay límite de palabra antes de s[i], suponiendo que s[i] es letra.
func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

// boundaryAfter indica si hay límite de palabra en s[j], suponiendo que s[j-1] es letra.
func boundaryAfter(s string, j int) bool {
	if j >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[j:])
	return !isWordRune(r)
}

func isUpperASCII(b byte) bool {
	return 'A' <= b && b <= 'Z'
}

func isLowerASCII(b byte) bool {
	return 'a' <= b && b <= 'z'
}

// titleWordEnd devuelve el fin de [A-Z][a-z]+ que empieza en i, o -1.
func titleWordEnd(s string, i int) int {
	if i >= len(s) || !isUpperASCII(s[i]) {
		return -1
	}
	j := i + 1
	for j < len(s) && isLowerASCII(s[j]) {
		j++
	}
	if j == i+1 {
		return -1
	}
	return j
}

// capitalizedPhrases busca secuencias de palabras Capitalizadas separadas por un espacio
// con límites de palabra Unicode en ambos extremos: "Andrés" no produce "Andr".
func capitalizedPhrases(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		end := titleWordEnd(s, i)
		if end < 0 || !boundaryBefore(s, i) || !boundaryAfter(s, end) {
			i++
			continue
		}
		// Las palabras intermedias terminan en ' ', que siempre es límite;
		// si la última falla el límite se descarta sólo esa.
		for end < len(s) && s[end] == ' ' {
			next := titleWordEnd(s, end+1)
			if next < 0 || !boundaryAfter(s, next) {
				break
			}
			end = next
		}
		out = append(out, s[i:end])
		i = end
	}
	return out
}
