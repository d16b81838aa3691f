package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TopTraitsLimit es la cantidad de rasgos que se reportan en el perfil.
const TopTraitsLimit = 5

// TraitScore se serializa como par [nombre, puntaje].
type TraitScore struct {
	Trait string
	Score int
}

func (ts TraitScore) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{ts.Trait, ts.Score})
}

func (ts *TraitScore) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("trait score: expected [name, score], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &ts.Trait); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &ts.Score)
}

// Profile es una foto inmutable del resultado; repetir la evaluación genera otro.
type Profile struct {
	RawScores          Scores       `json:"raw_scores"`
	TopTraits          []TraitScore `json:"top_traits"`
	CommunicationStyle string       `json:"communication_style"`
	WorkStyle          string       `json:"work_style"`
	MotivationStyle    string       `json:"motivation_style"`
}

// PrimaryTrait devuelve el rasgo con mayor puntaje, o "" si no hay respuestas.
func (p Profile) PrimaryTrait() string {
	if len(p.TopTraits) == 0 {
		return ""
	}
	return p.TopTraits[0].Trait
}

// TopTraitNames devuelve hasta n nombres del top.
func (p Profile) TopTraitNames(n int) []string {
	if n > len(p.TopTraits) {
		n = len(p.TopTraits)
	}
	names := make([]string, 0, n)
	for _, ts := range p.TopTraits[:n] {
		names = append(names, ts.Trait)
	}
	return names
}

// Finalized distingue un perfil calculado (aun sin respuestas) del valor cero.
func (p Profile) Finalized() bool {
	return p.CommunicationStyle != "" || p.WorkStyle != "" || p.MotivationStyle != ""
}

// Insights arma el texto de lectura del perfil para mostrar al usuario.
// Sin rasgos puntuados el rasgo principal es "balanced".
func (p Profile) Insights() string {
	if !p.Finalized() {
		return "Please complete the assessment first."
	}
	primary := p.PrimaryTrait()
	if primary == "" {
		primary = "balanced"
	}
	parts := []string{
		fmt.Sprintf("Based on your assessment, you're primarily %s, which suggests you thrive in environments that value this quality.", primary),
		fmt.Sprintf("Your %s communication style means you'll connect best with people who appreciate this approach.", p.CommunicationStyle),
		fmt.Sprintf("As a %s, you'll perform best when given opportunities that align with this style.", p.WorkStyle),
	}
	return strings.Join(parts, " ")
}
