package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ChoiceKey identifica una opción dentro de una pregunta.
type ChoiceKey string

const (
	ChoiceA ChoiceKey = "a"
	ChoiceB ChoiceKey = "b"
	ChoiceC ChoiceKey = "c"
	ChoiceD ChoiceKey = "d"
)

// ChoiceKeys es el conjunto fijo de claves, idéntico para todas las preguntas.
var ChoiceKeys = []ChoiceKey{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// Valid indica si la clave pertenece al conjunto fijo.
func (k ChoiceKey) Valid() bool {
	for _, c := range ChoiceKeys {
		if c == k {
			return true
		}
	}
	return false
}

var ErrInvalidCatalog = errors.New("invalid question catalog")

// TraitWeight es el incremento que una opción aporta a un rasgo.
type TraitWeight struct {
	Trait  string
	Weight int
}

// Weights conserva el orden de declaración; ese orden define el desempate del top de rasgos.
type Weights []TraitWeight

// MarshalJSON serializa como objeto {rasgo: peso} respetando el orden.
func (w Weights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tw := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(tw.Trait)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		fmt.Fprintf(&buf, ":%d", tw.Weight)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON lee un objeto {rasgo: peso} sin perder el orden de las claves.
func (w *Weights) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("trait weights: expected object")
	}
	out := Weights{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		trait, _ := keyTok.(string)
		var weight int
		if err := dec.Decode(&weight); err != nil {
			return fmt.Errorf("trait weights %q: %w", trait, err)
		}
		out = append(out, TraitWeight{Trait: trait, Weight: weight})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*w = out
	return nil
}

// Question es inmutable una vez cargada en el catálogo.
type Question struct {
	ID           int                   `json:"id"`
	Prompt       string                `json:"prompt"`
	Options      map[ChoiceKey]string  `json:"options"`
	TraitWeights map[ChoiceKey]Weights `json:"trait_weights"`
}

// SortedOptions devuelve las opciones en el orden fijo de ChoiceKeys.
func (q Question) SortedOptions() []ChoiceKey {
	keys := make([]ChoiceKey, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ValidateCatalog verifica ids únicos y positivos, cuatro opciones por pregunta
// y pesos positivos para cada opción.
func ValidateCatalog(catalog []Question) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidCatalog)
	}
	seen := make(map[int]struct{}, len(catalog))
	for _, q := range catalog {
		if q.ID <= 0 {
			return fmt.Errorf("%w: question id %d must be positive", ErrInvalidCatalog, q.ID)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidCatalog, q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) != len(ChoiceKeys) {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidCatalog, q.ID, len(q.Options))
		}
		for _, key := range ChoiceKeys {
			if _, ok := q.Options[key]; !ok {
				return fmt.Errorf("%w: question %d missing option %q", ErrInvalidCatalog, q.ID, key)
			}
			weights := q.TraitWeights[key]
			if len(weights) == 0 {
				return fmt.Errorf("%w: question %d option %q has no trait weights", ErrInvalidCatalog, q.ID, key)
			}
			for _, tw := range weights {
				if tw.Trait == "" || tw.Weight <= 0 {
					return fmt.Errorf("%w: question %d option %q has invalid weight %q=%d", ErrInvalidCatalog, q.ID, key, tw.Trait, tw.Weight)
				}
			}
		}
		if len(q.TraitWeights) != len(ChoiceKeys) {
			return fmt.Errorf("%w: question %d has weights for unknown options", ErrInvalidCatalog, q.ID)
		}
	}
	return nil
}

// ParseCatalog decodifica y valida un catálogo en formato JSON.
func ParseCatalog(data []byte) ([]Question, error) {
	var catalog []Question
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
