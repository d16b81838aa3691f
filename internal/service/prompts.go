package service

import (
	"fmt"
	"strings"

	"career-coach/internal/assessment"
)

const (
	researchDescriptionLimit = 500
	coverLetterInputLimit    = 2000
)

const analysisPromptTemplate = `Act as an elite UK Headhunter with 15+ years of experience. Analyse the following CV against the job description provided.

CV Text:
%s

Job Description:
%s

Provide your analysis in the following JSON format:
{
    "match_score": <number 0-100>,
    "salary_range": "<UK salary range, e.g., £45,000 - £55,000>",
    "missing_hard_skills": ["<skill 1>", "<skill 2>", "<skill 3>"],
    "interview_questions": [
        "<Question 1 targeting skill gaps>",
        "<Question 2 targeting skill gaps>",
        "<Question 3 targeting skill gaps>"
    ],
    "power_word_swaps": [
        {"original": "<generic word>", "replacement": "<power word>", "context": "<brief explanation>"}
    ],
    "cv_improvements": [
        {"current": "<current bullet point>", "improved": "<improved bullet point>", "reason": "<why this change helps>"}
    ]
}

Include exactly five power_word_swaps and three cv_improvements.

IMPORTANT: Return ONLY valid JSON. Do not include any text before or after the JSON.`

const researchPromptTemplate = `Research the following company and provide comprehensive intelligence for a job interview candidate.

Company Name: %s
%s

Provide your research in the following JSON format:
{
    "company_name": %q,
    "financial_performance": {
        "market_position": "<description of current market position>",
        "financial_health": "<recent financial health, funding rounds, profit trends, or share price if public>",
        "key_metrics": "<any relevant financial metrics or indicators>"
    },
    "recent_news": [
        {"headline": "<headline>", "summary": "<brief summary>", "significance": "<why this matters>"}
    ],
    "interview_deep_dive": [
        "<Specific thing to research on company website or LinkedIn>"
    ]
}

IMPORTANT:
- Give three recent_news items and five interview_deep_dive items
- Be specific and actionable in your research
- Focus on recent information (last 12-18 months)
- For financial performance, estimate based on available public information
- For interview deep-dive items, be specific about what to look for (e.g., "Check their 'About Us' page for their mission statement and note their core values")
- Return ONLY valid JSON. Do not include any text before or after the JSON.`

const coverLetterPromptTemplate = `You are an expert UK career coach and cover letter writer. Draft a compelling cover letter for this job application.

CV Text:
%s

Job Description:
%s

%s

Requirements:
1. Write a professional UK-style cover letter (3-4 paragraphs)
2. Address the letter appropriately (use "Dear Hiring Manager" if no specific name is provided)
3. Start with a strong opening that shows genuine interest in the role
4. Highlight 2-3 key experiences from the CV that align with the job requirements
5. Demonstrate understanding of the company/role by referencing specific aspects from the job description
6. Close with enthusiasm and a clear call to action
7. Keep it concise, professional, and impactful
8. Use UK English spelling and conventions
9. The language should match the personality profile provided (if available)

Format the cover letter as a proper business letter with appropriate spacing and structure.`

const defaultToneContext = `Use professional, engaging language suitable for a UK job application.
Write in a confident but not overly formal tone.`

// ResearchContext es el contexto opcional que acompaña la investigación de empresa.
type ResearchContext struct {
	JobURL         string
	JobDescription string
}

func buildAnalysisPrompt(cv, job string) string {
	return fmt.Sprintf(analysisPromptTemplate, cv, job)
}

func buildResearchPrompt(company string, rc ResearchContext) string {
	var ctx strings.Builder
	if rc.JobURL != "" {
		ctx.WriteString("Job URL: " + rc.JobURL + "\n")
	}
	if rc.JobDescription != "" {
		ctx.WriteString("Job Description (first 500 chars): " + truncateRunes(rc.JobDescription, researchDescriptionLimit) + "\n")
	}
	return fmt.Sprintf(researchPromptTemplate, company, strings.TrimRight(ctx.String(), "\n"), company)
}

func buildCoverLetterPrompt(cv, job string, profile *assessment.Profile) string {
	return fmt.Sprintf(coverLetterPromptTemplate,
		truncateRunes(cv, coverLetterInputLimit),
		truncateRunes(job, coverLetterInputLimit),
		personalityContext(profile),
	)
}

func personalityContext(profile *assessment.Profile) string {
	if profile == nil || len(profile.TopTraits) == 0 {
		return defaultToneContext
	}
	var sb strings.Builder
	sb.WriteString("IMPORTANT - Use this personality profile to tailor the language and tone:\n")
	sb.WriteString("- Top Personality Traits: " + strings.Join(profile.TopTraitNames(3), ", ") + "\n")
	sb.WriteString("- Communication Style: " + profile.CommunicationStyle + "\n")
	sb.WriteString("- Work Style: " + profile.WorkStyle + "\n")
	sb.WriteString("- Motivation Style: " + profile.MotivationStyle + "\n\n")
	sb.WriteString("Write the cover letter using language that reflects these traits. For example:\n")
	sb.WriteString("- If communication style is 'direct and concise', use clear, straightforward language\n")
	sb.WriteString("- If work style is 'collaborative team player', emphasize teamwork and collaboration\n")
	sb.WriteString("- If motivation style is 'results-driven', focus on achievements and outcomes\n")
	sb.WriteString("- Match the tone to their personality traits naturally")
	return sb.String()
}
