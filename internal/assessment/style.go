package assessment

// Scores es el acumulado de rasgos; un rasgo ausente vale 0.
type Scores map[string]int

func (s Scores) Get(trait string) int {
	return s[trait]
}

// StyleRule asigna Label cuando Match es verdadero.
type StyleRule struct {
	Label string
	Match func(Scores) bool
}

// StyleRuleSet evalúa reglas en orden; la primera que coincide gana.
type StyleRuleSet struct {
	Rules   []StyleRule
	Default string
}

func (rs StyleRuleSet) Classify(scores Scores) string {
	for _, rule := range rs.Rules {
		if rule.Match != nil && rule.Match(scores) {
			return rule.Label
		}
	}
	return rs.Default
}

func above(trait string, threshold int) func(Scores) bool {
	return func(s Scores) bool { return s.Get(trait) > threshold }
}

var CommunicationRules = StyleRuleSet{
	Rules: []StyleRule{
		{Label: "direct and concise", Match: func(s Scores) bool { return s.Get("concise") > s.Get("thorough") }},
		{Label: "enthusiastic and engaging", Match: above("enthusiastic", 3)},
		{Label: "thoughtful and measured", Match: above("thoughtful", 3)},
	},
	Default: "detailed and thorough",
}

var WorkRules = StyleRuleSet{
	Rules: []StyleRule{
		{Label: "collaborative team player", Match: above("collaborative", 5)},
		{Label: "independent and self-directed", Match: above("independent", 3)},
		{Label: "structured and organized", Match: above("structured", 3)},
	},
	Default: "flexible and adaptable",
}

var MotivationRules = StyleRuleSet{
	Rules: []StyleRule{
		{Label: "results and achievement-driven", Match: above("goal-oriented", 3)},
		{Label: "innovation and creative expression", Match: above("creative", 3)},
		{Label: "solving complex challenges", Match: above("problem-solver", 3)},
	},
	Default: "making a positive impact",
}
