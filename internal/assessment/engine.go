package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrInvalidSnapshot = errors.New("invalid assessment snapshot")
)

// Engine acumula las respuestas de una sesión. No es seguro para uso concurrente:
// se espera una instancia por sesión en curso.
type Engine struct {
	catalog   []Question
	index     map[int]int
	responses map[int]ChoiceKey
}

// NewEngine valida el catálogo y crea un motor sin respuestas.
func NewEngine(catalog []Question) (*Engine, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	cp := make([]Question, len(catalog))
	copy(cp, catalog)
	index := make(map[int]int, len(cp))
	for i, q := range cp {
		index[q.ID] = i
	}
	return &Engine{
		catalog:   cp,
		index:     index,
		responses: make(map[int]ChoiceKey),
	}, nil
}

// NewDefaultEngine usa el catálogo de referencia.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultCatalog())
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return e
}

func (e *Engine) Catalog() []Question {
	cp := make([]Question, len(e.catalog))
	copy(cp, e.catalog)
	return cp
}

func (e *Engine) Total() int { return len(e.catalog) }

func (e *Engine) Answered() int { return len(e.responses) }

// Question busca una pregunta por id.
func (e *Engine) Question(id int) (Question, bool) {
	i, ok := e.index[id]
	if !ok {
		return Question{}, false
	}
	return e.catalog[i], true
}

// NextUnansweredQuestion devuelve la primera pregunta sin respuesta en orden de catálogo.
func (e *Engine) NextUnansweredQuestion() (Question, bool) {
	for _, q := range e.catalog {
		if _, done := e.responses[q.ID]; !done {
			return q, true
		}
	}
	return Question{}, false
}

// Complete indica si todas las preguntas tienen respuesta.
func (e *Engine) Complete() bool {
	_, pending := e.NextUnansweredQuestion()
	return !pending
}

// RecordAnswer guarda o sobrescribe la respuesta. Ante error el estado no cambia.
func (e *Engine) RecordAnswer(questionID int, choice ChoiceKey) error {
	q, ok := e.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if _, ok := q.Options[choice]; !ok {
		return fmt.Errorf("%w: %q for question %d", ErrInvalidChoice, choice, questionID)
	}
	e.responses[questionID] = choice
	return nil
}

// Responses devuelve una copia del set de respuestas.
func (e *Engine) Responses() map[int]ChoiceKey {
	out := make(map[int]ChoiceKey, len(e.responses))
	for k, v := range e.responses {
		out[k] = v
	}
	return out
}

// Finalize recalcula el perfil completo sobre las respuestas actuales; acepta sets parciales.
// Los empates en el top se resuelven por el orden en que aparece cada rasgo recorriendo
// el catálogo.
func (e *Engine) Finalize() Profile {
	scores := Scores{}
	var order []string
	for _, q := range e.catalog {
		choice, answered := e.responses[q.ID]
		if !answered {
			continue
		}
		for _, tw := range q.TraitWeights[choice] {
			if _, seen := scores[tw.Trait]; !seen {
				order = append(order, tw.Trait)
			}
			scores[tw.Trait] += tw.Weight
		}
	}

	ranked := make([]TraitScore, 0, len(order))
	for _, trait := range order {
		ranked = append(ranked, TraitScore{Trait: trait, Score: scores[trait]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > TopTraitsLimit {
		ranked = ranked[:TopTraitsLimit]
	}

	return Profile{
		RawScores:          scores,
		TopTraits:          ranked,
		CommunicationStyle: CommunicationRules.Classify(scores),
		WorkStyle:          WorkRules.Classify(scores),
		MotivationStyle:    MotivationRules.Classify(scores),
	}
}

// Snapshot es la forma persistida del motor.
type Snapshot struct {
	Responses map[int]ChoiceKey `json:"responses"`
	Profile   Profile           `json:"profile"`
}

// Serialize produce {responses, profile} con el perfil recalculado.
func (e *Engine) Serialize() ([]byte, error) {
	return json.Marshal(Snapshot{
		Responses: e.Responses(),
		Profile:   e.Finalize(),
	})
}

// Deserialize reconstruye un motor a partir de un snapshot. El perfil guardado se ignora:
// se recalcula desde las respuestas para que respete el catálogo vigente.
func Deserialize(catalog []Question, blob []byte) (*Engine, error) {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	e, err := NewEngine(catalog)
	if err != nil {
		return nil, err
	}
	for id, choice := range snap.Responses {
		if err := e.RecordAnswer(id, choice); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	return e, nil
}
