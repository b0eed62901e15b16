// Package intent maps raw utterances to coarse conversation intents using
// keyword and pattern tables. The tables are the whole model; there is no
// learned component.
package intent

import (
	"math"
	"regexp"
	"strings"
)

// GeneralIntent is returned when no rule scores above zero.
const GeneralIntent = "general"

// Result is the classifier output for one utterance.
type Result struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type rule struct {
	name     string
	keywords []string
	patterns []*regexp.Regexp
}

// Classifier scores utterances against an ordered rule table.
// Registration order is the tie-break: on equal scores the
// earlier-registered intent wins.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				name:     "career_choice",
				keywords: []string{"career", "job", "profession", "choose", "path", "field", "industry", "work"},
				patterns: compile(`what.*career`, `choose.*job`, `career.*path`, `profession`),
			},
			{
				name:     "skills_development",
				keywords: []string{"skill", "learn", "develop", "improve", "training", "course", "education"},
				patterns: compile(`learn.*skill`, `develop.*skill`, `skill.*gap`, `training`),
			},
			{
				name:     "job_search",
				keywords: []string{"job", "search", "apply", "resume", "interview", "hiring", "employment"},
				patterns: compile(`job.*search`, `find.*job`, `apply`, `resume`, `interview`),
			},
			{
				name:     "salary_information",
				keywords: []string{"salary", "pay", "compensation", "wage", "income", "money", "earning"},
				patterns: compile(`salary`, `pay`, `compensation`, `wage`, `earn`),
			},
			{
				name:     "education_training",
				keywords: []string{"education", "degree", "certification", "course", "training", "study", "learn"},
				patterns: compile(`education`, `degree`, `certification`, `course`, `study`),
			},
		},
	}
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// Intents returns the registered intent names in declaration order.
func (c *Classifier) Intents() []string {
	out := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r.name)
	}
	return out
}

// Classify scores the utterance against every rule. Keyword hits count 1,
// pattern hits count 2. A zero max score falls back to the general intent
// at a fixed 0.5 confidence.
func (c *Classifier) Classify(utterance string) Result {
	lower := strings.ToLower(utterance)

	best := GeneralIntent
	maxScore := 0
	for _, r := range c.rules {
		score := 0
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		for _, p := range r.patterns {
			if p.MatchString(utterance) {
				score += 2
			}
		}
		// strictly greater keeps the first-registered rule on ties
		if score > maxScore {
			maxScore = score
			best = r.name
		}
	}

	if maxScore == 0 {
		return Result{Intent: GeneralIntent, Confidence: 0.5}
	}

	confidence := math.Min(0.3+0.15*float64(maxScore), 0.95)
	confidence = math.Round(confidence*100) / 100

	return Result{Intent: best, Confidence: confidence}
}
