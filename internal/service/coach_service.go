package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Roadblock string

const (
	RoadblockCommunication Roadblock = "communication"
	RoadblockConflict      Roadblock = "conflict"
	RoadblockWorkload      Roadblock = "workload"
	RoadblockCareerGrowth  Roadblock = "career_growth"
	RoadblockStress        Roadblock = "stress"
	RoadblockTeamwork      Roadblock = "teamwork"
	RoadblockLeadership    Roadblock = "leadership"
	RoadblockMotivation    Roadblock = "motivation"
	RoadblockGeneral       Roadblock = "general"
)

const strategiesPerReply = 3

// El orden importa: gana el primer grupo con alguna coincidencia.
var roadblockKeywords = []struct {
	kind     Roadblock
	keywords []string
}{
	{RoadblockCommunication, []string{"communicat", "misunderstand", "talk", "discuss", "explain"}},
	{RoadblockConflict, []string{"conflict", "disagree", "argument", "fight", "tension"}},
	{RoadblockWorkload, []string{"workload", "overwhelm", "too much", "busy", "stressed", "pressure"}},
	{RoadblockCareerGrowth, []string{"career", "promotion", "advance", "growth", "stuck", "progress"}},
	{RoadblockStress, []string{"stress", "anxious", "worried", "burnout", "exhausted"}},
	{RoadblockTeamwork, []string{"team", "colleague", "coworker", "collaborat"}},
	{RoadblockLeadership, []string{"lead", "manage", "supervisor", "boss", "director"}},
	{RoadblockMotivation, []string{"motivat", "unmotivat", "bored", "uninterested", "passion"}},
}

var coachingStrategies = map[Roadblock][]string{
	RoadblockCommunication: {
		"Practice active listening - focus on understanding before responding",
		"Use 'I' statements to express your perspective without blame",
		"Schedule regular check-ins to prevent misunderstandings",
		"Clarify expectations upfront to avoid assumptions",
		"Consider different communication styles - some prefer email, others face-to-face",
	},
	RoadblockConflict: {
		"Identify the root cause, not just the symptoms",
		"Find common ground and shared goals",
		"Focus on the issue, not the person",
		"Consider mediation if the conflict persists",
		"Document incidents if necessary for HR involvement",
	},
	RoadblockWorkload: {
		"Prioritize tasks using the Eisenhower Matrix (urgent vs important)",
		"Learn to say 'no' or negotiate deadlines when overwhelmed",
		"Break large tasks into smaller, manageable chunks",
		"Use time-blocking to focus on specific tasks",
		"Communicate with your manager about capacity and priorities",
	},
	RoadblockCareerGrowth: {
		"Set clear, measurable career goals with timelines",
		"Seek feedback from mentors and supervisors",
		"Identify skill gaps and create a learning plan",
		"Volunteer for challenging projects to gain experience",
		"Build a professional network both inside and outside your organization",
	},
	RoadblockStress: {
		"Practice mindfulness and deep breathing exercises",
		"Maintain work-life boundaries - set specific work hours",
		"Take regular breaks throughout the day",
		"Exercise regularly to manage stress levels",
		"Consider speaking with a professional counselor if stress is overwhelming",
	},
	RoadblockTeamwork: {
		"Clarify roles and responsibilities to avoid overlap",
		"Establish regular team meetings for alignment",
		"Celebrate team successes together",
		"Address issues directly but constructively",
		"Build trust through consistent, reliable actions",
	},
	RoadblockLeadership: {
		"Lead by example - demonstrate the behaviors you expect",
		"Provide clear direction and context for decisions",
		"Empower team members by delegating appropriately",
		"Give regular, constructive feedback",
		"Invest in your team's development and growth",
	},
	RoadblockMotivation: {
		"Reconnect with your 'why' - remember your purpose",
		"Set small, achievable goals to build momentum",
		"Find meaning in your daily tasks",
		"Seek new challenges to prevent stagnation",
		"Celebrate your progress and accomplishments",
	},
	RoadblockGeneral: {
		"Take a step back to gain perspective on the situation",
		"Break the problem down into smaller parts",
		"Seek advice from trusted colleagues or mentors",
		"Consider multiple solutions before deciding",
		"Focus on what you can control, not what you can't",
	},
}

// ClassifyRoadblock asigna el tipo de obstáculo según palabras clave.
func ClassifyRoadblock(message string) Roadblock {
	lower := strings.ToLower(message)
	for _, group := range roadblockKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.kind
			}
		}
	}
	return RoadblockGeneral
}

// Strategies devuelve una copia de las estrategias de un tipo.
func Strategies(kind Roadblock) []string {
	list, ok := coachingStrategies[kind]
	if !ok {
		list = coachingStrategies[RoadblockGeneral]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// CoachTurn es un intercambio registrado en la conversación.
type CoachTurn struct {
	Timestamp time.Time `json:"timestamp"`
	UserInput string    `json:"user_input"`
	Roadblock Roadblock `json:"roadblock_type"`
	Response  string    `json:"response"`
}

// CoachReply es la respuesta del coach a un mensaje.
type CoachReply struct {
	Roadblock  Roadblock `json:"roadblock_type"`
	Strategies []string  `json:"strategies"`
	Response   string    `json:"response"`
}

// CoachService genera respuestas de coaching y guarda el historial de la conversación.
type CoachService struct {
	mu      sync.Mutex
	rng     *rand.Rand
	history []CoachTurn
	logger  *zap.Logger
}

// NewCoachService acepta un rng propio para tests deterministas; nil usa uno sembrado por tiempo.
func NewCoachService(rng *rand.Rand, logger *zap.Logger) *CoachService {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoachService{rng: rng, logger: logger}
}

// Respond clasifica el mensaje, elige tres estrategias y adapta el texto al estilo de comunicación.
func (s *CoachService) Respond(message, communicationStyle string) CoachReply {
	kind := ClassifyRoadblock(message)
	pool := Strategies(kind)

	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	s.mu.Unlock()
	picked := pool[:min(strategiesPerReply, len(pool))]

	var sb strings.Builder
	fmt.Fprintf(&sb, "I understand you're facing a challenge related to %s. Here are some strategies that might help:\n\n",
		strings.ReplaceAll(string(kind), "_", " "))
	for i, strategy := range picked {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strategy)
	}
	sb.WriteString("\nRemember, every challenge is an opportunity to grow. " +
		"Would you like to explore any of these strategies in more detail, or discuss another aspect of this situation?")

	response := personalize(sb.String(), communicationStyle)

	s.mu.Lock()
	s.history = append(s.history, CoachTurn{
		Timestamp: time.Now().UTC(),
		UserInput: message,
		Roadblock: kind,
		Response:  response,
	})
	s.mu.Unlock()

	s.logger.Debug("coach reply", zap.String("roadblock", string(kind)))
	return CoachReply{Roadblock: kind, Strategies: picked, Response: response}
}

// History devuelve una copia de los turnos registrados.
func (s *CoachService) History() []CoachTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CoachTurn, len(s.history))
	copy(out, s.history)
	return out
}

func personalize(response, style string) string {
	switch {
	case style == "":
		return response
	case strings.Contains(style, "direct") || strings.Contains(style, "concise"):
		response = strings.ReplaceAll(response, "Consider", "Try")
		return strings.ReplaceAll(response, "You might", "Do this")
	case strings.Contains(style, "thoughtful"):
		return "Let's think through this together. " + response
	}
	return response
}
