package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/extract"
	"career-coach/internal/matcher"
	"career-coach/internal/service"
)

const maxFileBytes = 10 << 20

func main() {
	reader := bufio.NewReader(os.Stdin)

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	coach := service.NewCoachService(nil, logger)
	var profile *assessment.Profile

	for {
		fmt.Println("\n===== Career Coach =====")
		fmt.Println("[1] Take the personality assessment")
		fmt.Println("[2] Analyze CV against a job description")
		fmt.Println("[3] Talk to the career coach")
		fmt.Println("[4] Exit")
		fmt.Print("Choose an option: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		switch strings.TrimSpace(line) {
		case "1":
			p, err := runAssessment(reader)
			if err != nil {
				fmt.Printf("Assessment error: %v\n", err)
				continue
			}
			profile = &p
		case "2":
			if err := runKeywordAnalysis(reader); err != nil {
				fmt.Printf("Analysis error: %v\n", err)
			}
		case "3":
			style := ""
			if profile != nil {
				style = profile.CommunicationStyle
			}
			runCoachChat(reader, coach, style)
		case "4":
			printCoachSummary(coach)
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func runAssessment(reader *bufio.Reader) (assessment.Profile, error) {
	engine := assessment.NewDefaultEngine()
	fmt.Printf("\n--- Personality assessment (%d questions) ---\n", engine.Total())

	for {
		q, ok := engine.NextUnansweredQuestion()
		if !ok {
			break
		}
		fmt.Printf("\n[%d/%d] %s\n", engine.Answered()+1, engine.Total(), q.Prompt)
		for _, key := range q.SortedOptions() {
			fmt.Printf("  %s) %s\n", strings.ToUpper(string(key)), q.Options[key])
		}
		fmt.Print("Your answer: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return assessment.Profile{}, fmt.Errorf("read answer: %w", err)
		}
		choice := assessment.ChoiceKey(strings.ToLower(strings.TrimSpace(input)))
		if err := engine.RecordAnswer(q.ID, choice); err != nil {
			fmt.Println("Please answer with A, B, C or D.")
		}
	}

	profile := engine.Finalize()
	fmt.Println("\n--- Your profile ---")
	for i, ts := range profile.TopTraits {
		fmt.Printf("%d. %s (%d)\n", i+1, ts.Trait, ts.Score)
	}
	fmt.Printf("Communication style: %s\n", profile.CommunicationStyle)
	fmt.Printf("Work style: %s\n", profile.WorkStyle)
	fmt.Printf("Motivation style: %s\n", profile.MotivationStyle)
	fmt.Printf("\n%s\n", profile.Insights())
	return profile, nil
}

func runKeywordAnalysis(reader *bufio.Reader) error {
	cvText, err := readDocument(reader, "Path to your CV (.pdf, .docx, .txt): ")
	if err != nil {
		return fmt.Errorf("cv: %w", err)
	}
	jobText, err := readDocument(reader, "Path to the job description (.pdf, .docx, .txt): ")
	if err != nil {
		return fmt.Errorf("job description: %w", err)
	}

	res, err := matcher.Analyze(cvText, jobText)
	if err != nil {
		return err
	}

	fmt.Printf("\nMatch score: %.2f%%\n", res.MatchScore)
	fmt.Printf("Matching keywords (%d): %s\n", len(res.MatchingKeywords), strings.Join(res.MatchingKeywords, ", "))
	fmt.Printf("Missing keywords (%d): %s\n", len(res.MissingKeywords), strings.Join(res.MissingKeywords, ", "))
	fmt.Println("\nSuggestions:")
	for _, s := range res.Suggestions {
		fmt.Printf("- %s\n", s)
	}
	return nil
}

func readDocument(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	path, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxFileBytes {
		return "", fmt.Errorf("file exceeds %d bytes", maxFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extract.FromFile(path, data)
}

func runCoachChat(reader *bufio.Reader, coach *service.CoachService, style string) {
	fmt.Println("\n---- Coach mode (type 'exit' to leave) ----")
	fmt.Println("Tell me about a challenge you're facing at work.")
	for {
		fmt.Print("You > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("read input: %v", err)
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "exit") || strings.EqualFold(text, "quit") {
			return
		}
		reply := coach.Respond(text, style)
		fmt.Printf("\nCoach > %s\n\n", reply.Response)
	}
}

func printCoachSummary(coach *service.CoachService) {
	turns := coach.History()
	if len(turns) == 0 {
		return
	}
	fmt.Printf("\nCoaching session: %d messages\n", len(turns))
	for _, t := range turns {
		fmt.Printf("- [%s] %s\n", t.Roadblock, t.UserInput)
	}
}
