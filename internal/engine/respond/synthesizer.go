// Package respond turns engine outcomes into user-facing messages. All
// template text lives in templates.go; the synthesizer only selects and
// personalizes.
package respond

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"career-mentor/internal/engine/assessment"
	"career-mentor/internal/models"
)

// FallbackMessage is returned whenever turn processing fails in a way the
// engine can still answer for.
const FallbackMessage = "I apologize, but I'm having trouble processing your request right now. Please try rephrasing your question, or ask me about career guidance, skills development, or job search advice."

// IntroMessage opens the guided assessment.
const IntroMessage = "Hi! I'm your AI Career Mentor. I'll help you discover the perfect career path by understanding your skills, interests, and goals. This will take about 5 minutes.\n\nLet's start with understanding your background:"

// ExitMessage confirms leaving the assessment mid-flow.
const ExitMessage = "No problem, we can pick the assessment back up whenever you like. What else can I help you with?"

// EmptyCatalogMessage covers the case where no careers are available to
// match against.
const EmptyCatalogMessage = "I've recorded your answers, but I don't have any career paths to compare them against right now. Please try again later."

var fallbackSuggestedActions = []string{
	"Try rephrasing your question",
	"Ask about career paths",
	"Explore our main features",
}

// Picker selects one index out of n template variants. Injecting it keeps
// response choice deterministic in tests.
type Picker interface {
	Pick(n int) int
}

type randPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (p *randPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

// NewRandPicker returns the production picker backed by its own rand source.
func NewRandPicker(seed int64) Picker {
	return &randPicker{rng: rand.New(rand.NewSource(seed))}
}

// Reply is a synthesized free-form answer.
type Reply struct {
	Message          string
	QuickReplies     []string
	SuggestedActions []string
}

// Synthesizer renders replies from the static template bank.
type Synthesizer struct {
	picker Picker
}

// NewSynthesizer builds a Synthesizer. A nil picker always selects the
// first template variant.
func NewSynthesizer(picker Picker) *Synthesizer {
	if picker == nil {
		picker = firstPicker{}
	}
	return &Synthesizer{picker: picker}
}

type firstPicker struct{}

func (firstPicker) Pick(int) int { return 0 }

// FreeForm answers a non-assessment turn for the classified intent,
// personalized against the profile.
func (s *Synthesizer) FreeForm(intent string, profile models.UserProfile) Reply {
	entry, ok := templateBank[intent]
	if !ok {
		message := generalResponses[s.picker.Pick(len(generalResponses))]
		return Reply{
			Message:          s.Personalize(message, profile),
			QuickReplies:     copyStrings(defaultQuickReplies),
			SuggestedActions: copyStrings(defaultSuggestedActions),
		}
	}
	message := entry.responses[s.picker.Pick(len(entry.responses))]
	return Reply{
		Message:          s.Personalize(message, profile),
		QuickReplies:     copyStrings(entry.quickReplies),
		SuggestedActions: copyStrings(entry.suggestedActions),
	}
}

// Personalize appends a profile-aware clause. An experience clause wins when
// the template already talks about experience; otherwise known skills get a
// mention.
func (s *Synthesizer) Personalize(message string, profile models.UserProfile) string {
	if profile.ExperienceLevel != "" && strings.Contains(message, "experience") {
		return message + fmt.Sprintf(" Given your %s level of experience, I'd especially recommend focusing on advanced opportunities.", profile.ExperienceLevel)
	}
	if len(profile.CurrentSkills) > 0 {
		skills := profile.CurrentSkills
		if len(skills) > 2 {
			skills = skills[:2]
		}
		return message + fmt.Sprintf(" Based on your skills in %s, you have great potential!", strings.Join(skills, " and "))
	}
	return message
}

// Templates exposes the response variants for an intent so callers can
// assert membership rather than exact text.
func (s *Synthesizer) Templates(intent string) []string {
	if entry, ok := templateBank[intent]; ok {
		return copyStrings(entry.responses)
	}
	return copyStrings(generalResponses)
}

// QuestionMessage renders the next assessment question. The acknowledgement
// line uses the upcoming question's follow-up text.
func (s *Synthesizer) QuestionMessage(question assessment.Question, clarify bool) string {
	if clarify {
		return fmt.Sprintf("Sorry, I didn't catch that. Please pick one of the listed options.\n\n%s", question.Prompt)
	}
	ack := "Next question:"
	if question.FollowUp != "" {
		ack = question.FollowUp
	}
	return fmt.Sprintf("Great! %s\n\n%s", ack, question.Prompt)
}

// IntroWithFirstQuestion opens the assessment and asks the first question.
func (s *Synthesizer) IntroWithFirstQuestion(question assessment.Question) string {
	return fmt.Sprintf("%s\n\n%s", IntroMessage, question.Prompt)
}

// AnalysisMessage summarizes the completed assessment around the top match.
func (s *Synthesizer) AnalysisMessage(profile models.UserProfile, top models.MatchResult) string {
	skills := "your background"
	if len(profile.CurrentSkills) > 0 {
		skills = strings.Join(profile.CurrentSkills, ", ")
	}
	career := top.Career
	return fmt.Sprintf(
		"Perfect! Based on your skills in %s and your interests, I've found some great career matches for you.\n\n"+
			"Your top match is **%s** with a %d%% compatibility score!\n\n"+
			"Here's what makes it a great fit:\n"+
			"• Average salary: $%s - $%s\n"+
			"• Job growth: %s\n"+
			"• Work environment: %s\n\n"+
			"I can create a personalized learning roadmap to help you transition into this field. What would you like to explore first?",
		skills,
		career.Title,
		top.MatchScore,
		formatThousands(career.Salary.Entry),
		formatThousands(career.Salary.Senior),
		career.GrowthRate,
		strings.Join(career.WorkEnvironment, ", "),
	)
}

// CompletionQuickReplies follow the analysis message.
func (s *Synthesizer) CompletionQuickReplies(top models.MatchResult) []string {
	return []string{
		fmt.Sprintf("Tell me more about %s", top.Career.Title),
		"Show me a roadmap",
		"What skills do I need?",
		"Compare these careers",
	}
}

// Fallback is the degraded reply for unrecoverable turn errors.
func (s *Synthesizer) Fallback() Reply {
	return Reply{
		Message:          FallbackMessage,
		QuickReplies:     copyStrings(defaultQuickReplies),
		SuggestedActions: copyStrings(fallbackSuggestedActions),
	}
}

// formatThousands renders 85000 as "85,000".
func formatThousands(n int) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
