package assessment

// pair arma los pesos habituales: rasgo principal 2, secundario 1.
func pair(primary, secondary string) Weights {
	return Weights{{Trait: primary, Weight: 2}, {Trait: secondary, Weight: 1}}
}

func options(a, b, c, d string) map[ChoiceKey]string {
	return map[ChoiceKey]string{ChoiceA: a, ChoiceB: b, ChoiceC: c, ChoiceD: d}
}

func weights(a, b, c, d Weights) map[ChoiceKey]Weights {
	return map[ChoiceKey]Weights{ChoiceA: a, ChoiceB: b, ChoiceC: c, ChoiceD: d}
}

// DefaultCatalog devuelve una copia nueva del cuestionario de referencia (25 preguntas).
func DefaultCatalog() []Question {
	return []Question{
		{
			ID:     1,
			Prompt: "When facing a challenging problem, you prefer to:",
			Options: options(
				"Work through it systematically step by step",
				"Brainstorm creative solutions with others",
				"Take immediate action and adapt as you go",
				"Analyze all possible outcomes before deciding",
			),
			TraitWeights: weights(
				pair("methodical", "analytical"),
				pair("collaborative", "creative"),
				pair("action-oriented", "adaptable"),
				pair("analytical", "cautious"),
			),
		},
		{
			ID:     2,
			Prompt: "In a team setting, you typically:",
			Options: options(
				"Take charge and lead the group",
				"Support others and ensure harmony",
				"Focus on completing your assigned tasks efficiently",
				"Generate innovative ideas and solutions",
			),
			TraitWeights: weights(
				pair("leadership", "assertive"),
				pair("supportive", "harmonious"),
				pair("reliable", "focused"),
				pair("innovative", "creative"),
			),
		},
		{
			ID:     3,
			Prompt: "Your ideal work environment is:",
			Options: options(
				"Structured with clear processes and deadlines",
				"Dynamic and fast-paced with variety",
				"Collaborative with open communication",
				"Quiet and independent with minimal interruptions",
			),
			TraitWeights: weights(
				pair("structured", "organized"),
				pair("dynamic", "flexible"),
				pair("collaborative", "communicative"),
				pair("independent", "focused"),
			),
		},
		{
			ID:     4,
			Prompt: "When receiving feedback, you:",
			Options: options(
				"Appreciate direct, honest feedback immediately",
				"Prefer feedback delivered gently and constructively",
				"Want specific examples and actionable steps",
				"Reflect on it privately before discussing",
			),
			TraitWeights: weights(
				pair("direct", "resilient"),
				pair("sensitive", "empathetic"),
				pair("detail-oriented", "practical"),
				pair("reflective", "thoughtful"),
			),
		},
		{
			ID:     5,
			Prompt: "Your communication style is best described as:",
			Options: options(
				"Concise and to the point",
				"Detailed and thorough",
				"Enthusiastic and engaging",
				"Thoughtful and measured",
			),
			TraitWeights: weights(
				pair("concise", "efficient"),
				pair("thorough", "comprehensive"),
				pair("enthusiastic", "energetic"),
				pair("thoughtful", "measured"),
			),
		},
		{
			ID:     6,
			Prompt: "When learning something new, you:",
			Options: options(
				"Read documentation and study thoroughly first",
				"Jump in and learn by doing",
				"Find a mentor or take a course",
				"Experiment and explore different approaches",
			),
			TraitWeights: weights(
				pair("studious", "methodical"),
				pair("hands-on", "practical"),
				pair("collaborative", "guided"),
				pair("exploratory", "curious"),
			),
		},
		{
			ID:     7,
			Prompt: "Your biggest motivation at work comes from:",
			Options: options(
				"Achieving goals and measurable results",
				"Helping others and making a positive impact",
				"Solving complex problems and challenges",
				"Creative expression and innovation",
			),
			TraitWeights: weights(
				pair("goal-oriented", "results-driven"),
				pair("altruistic", "impactful"),
				pair("problem-solver", "analytical"),
				pair("creative", "innovative"),
			),
		},
		{
			ID:     8,
			Prompt: "When stressed, you tend to:",
			Options: options(
				"Create a plan and tackle issues systematically",
				"Seek support from colleagues or friends",
				"Take a break and return with fresh perspective",
				"Push through and work harder",
			),
			TraitWeights: weights(
				pair("organized", "systematic"),
				pair("support-seeking", "collaborative"),
				pair("balanced", "self-aware"),
				pair("resilient", "determined"),
			),
		},
		{
			ID:     9,
			Prompt: "You prefer to make decisions:",
			Options: options(
				"Quickly based on intuition and experience",
				"After gathering all available information",
				"Through discussion and consensus",
				"By weighing pros and cons carefully",
			),
			TraitWeights: weights(
				pair("intuitive", "decisive"),
				pair("informed", "thorough"),
				pair("collaborative", "consensus-driven"),
				pair("analytical", "careful"),
			),
		},
		{
			ID:     10,
			Prompt: "Your ideal career growth involves:",
			Options: options(
				"Rapid advancement and new challenges",
				"Deepening expertise in your field",
				"Building relationships and leading teams",
				"Exploring different roles and industries",
			),
			TraitWeights: weights(
				pair("ambitious", "growth-oriented"),
				pair("specialized", "expert"),
				pair("leadership", "relationship-focused"),
				pair("exploratory", "versatile"),
			),
		},
		{
			ID:     11,
			Prompt: "When a project's requirements change suddenly, you:",
			Options: options(
				"Reorganize the plan and reset priorities",
				"Embrace the change and adjust quickly",
				"Talk it through with the team to realign",
				"Dig into why it changed before acting",
			),
			TraitWeights: weights(
				pair("structured", "organized"),
				pair("adaptable", "flexible"),
				pair("collaborative", "communicative"),
				pair("analytical", "curious"),
			),
		},
		{
			ID:     12,
			Prompt: "In meetings, you are most likely to:",
			Options: options(
				"Keep your contributions brief and focused",
				"Share the full context and background",
				"Energize the room with new ideas",
				"Listen first and speak once you have a considered view",
			),
			TraitWeights: weights(
				pair("concise", "efficient"),
				pair("thorough", "comprehensive"),
				pair("enthusiastic", "energetic"),
				pair("thoughtful", "measured"),
			),
		},
		{
			ID:     13,
			Prompt: "When a colleague disagrees with you, you:",
			Options: options(
				"State your position clearly and firmly",
				"Look for common ground",
				"Ask for data to settle the question",
				"Take time to consider their perspective",
			),
			TraitWeights: weights(
				pair("direct", "assertive"),
				pair("harmonious", "empathetic"),
				pair("analytical", "informed"),
				pair("reflective", "thoughtful"),
			),
		},
		{
			ID:     14,
			Prompt: "You feel most accomplished when you:",
			Options: options(
				"Hit a challenging target",
				"See your work help someone",
				"Crack a problem others gave up on",
				"Build something original",
			),
			TraitWeights: weights(
				pair("goal-oriented", "results-driven"),
				pair("altruistic", "impactful"),
				pair("problem-solver", "determined"),
				pair("creative", "innovative"),
			),
		},
		{
			ID:     15,
			Prompt: "How do you organize your workday?",
			Options: options(
				"A detailed to-do list and schedule",
				"Flexible priorities adjusted as things come up",
				"Around meetings and team check-ins",
				"Long blocks of uninterrupted focus",
			),
			TraitWeights: weights(
				pair("organized", "structured"),
				pair("flexible", "adaptable"),
				pair("collaborative", "communicative"),
				pair("independent", "focused"),
			),
		},
		{
			ID:     16,
			Prompt: "When starting a new role, you first:",
			Options: options(
				"Learn the processes and documentation",
				"Get your hands on real tasks",
				"Meet as many colleagues as possible",
				"Look for things that could be improved",
			),
			TraitWeights: weights(
				pair("studious", "methodical"),
				pair("hands-on", "action-oriented"),
				pair("relationship-focused", "collaborative"),
				pair("innovative", "curious"),
			),
		},
		{
			ID:     17,
			Prompt: "How do you handle deadlines?",
			Options: options(
				"Plan milestones well in advance",
				"Work best under a bit of pressure",
				"Coordinate with others to share the load",
				"Set your own pace and deliver on time",
			),
			TraitWeights: weights(
				pair("structured", "reliable"),
				pair("dynamic", "energetic"),
				pair("collaborative", "supportive"),
				pair("independent", "self-aware"),
			),
		},
		{
			ID:     18,
			Prompt: "When writing an email to your manager, you:",
			Options: options(
				"Get straight to the point",
				"Include all the relevant detail",
				"Keep it warm and upbeat",
				"Draft, reread and refine before sending",
			),
			TraitWeights: weights(
				pair("concise", "direct"),
				pair("thorough", "detail-oriented"),
				pair("enthusiastic", "communicative"),
				pair("thoughtful", "careful"),
			),
		},
		{
			ID:     19,
			Prompt: "You are assigned a task you find boring. You:",
			Options: options(
				"Finish it quickly so you can move on",
				"Find a way to make it useful for the team",
				"Automate or streamline it",
				"Turn it into a learning opportunity",
			),
			TraitWeights: weights(
				pair("efficient", "results-driven"),
				pair("supportive", "impactful"),
				pair("problem-solver", "innovative"),
				pair("growth-oriented", "curious"),
			),
		},
		{
			ID:     20,
			Prompt: "Your preferred way to share an idea is:",
			Options: options(
				"A clear written proposal",
				"A quick prototype or demo",
				"An open brainstorming session",
				"A one-to-one conversation",
			),
			TraitWeights: weights(
				pair("organized", "detail-oriented"),
				pair("hands-on", "creative"),
				pair("collaborative", "enthusiastic"),
				pair("empathetic", "measured"),
			),
		},
		{
			ID:     21,
			Prompt: "When a plan fails, you:",
			Options: options(
				"Identify what went wrong and adjust the process",
				"Try a different approach straight away",
				"Check in on how the team is feeling",
				"Treat it as feedback and keep going",
			),
			TraitWeights: weights(
				pair("analytical", "systematic"),
				pair("adaptable", "action-oriented"),
				pair("empathetic", "supportive"),
				pair("resilient", "determined"),
			),
		},
		{
			ID:     22,
			Prompt: "Which achievement would make you proudest?",
			Options: options(
				"Being promoted ahead of schedule",
				"Mentoring someone to success",
				"Becoming the go-to expert on a topic",
				"Launching a new product or idea",
			),
			TraitWeights: weights(
				pair("ambitious", "goal-oriented"),
				pair("altruistic", "leadership"),
				pair("specialized", "expert"),
				pair("creative", "innovative"),
			),
		},
		{
			ID:     23,
			Prompt: "In a crisis, you are the person who:",
			Options: options(
				"Takes control and directs others",
				"Keeps everyone calm",
				"Gathers the facts before anyone acts",
				"Quietly fixes the underlying problem",
			),
			TraitWeights: weights(
				pair("leadership", "decisive"),
				pair("harmonious", "balanced"),
				pair("informed", "cautious"),
				pair("independent", "problem-solver"),
			),
		},
		{
			ID:     24,
			Prompt: "How do you prefer to receive instructions?",
			Options: options(
				"A short summary of what is needed",
				"A complete brief with every requirement",
				"A conversation where you can ask questions",
				"Just the goal, with freedom to decide how",
			),
			TraitWeights: weights(
				pair("concise", "practical"),
				pair("thorough", "structured"),
				pair("communicative", "collaborative"),
				pair("independent", "exploratory"),
			),
		},
		{
			ID:     25,
			Prompt: "Looking five years ahead, you want to:",
			Options: options(
				"Lead a team or department",
				"Be recognized for deep expertise",
				"Be doing work that matters to others",
				"Have tried several different paths",
			),
			TraitWeights: weights(
				pair("leadership", "ambitious"),
				pair("expert", "specialized"),
				pair("impactful", "altruistic"),
				pair("versatile", "exploratory"),
			),
		},
	}
}
