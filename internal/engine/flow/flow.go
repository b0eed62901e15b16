// Package flow decides, per incoming message, whether the guided
// assessment starts, continues, exits, or the turn stays free-form.
package flow

import (
	"strings"

	"career-mentor/internal/models"
)

var startTriggers = []string{
	"career assessment", "assess my skills", "what career", "career path",
	"skill gap", "roadmap", "learning plan", "career guidance",
	"help me choose", "find my career", "what should i do",
}

var exitTriggers = []string{
	"exit", "stop", "quit", "help with something else", "different question",
}

// Decision is the action the engine takes for one turn.
type Decision int

const (
	FreeForm Decision = iota
	StartAssessment
	ContinueAssessment
	ExitAssessment
)

// WantsExit reports whether the message carries an exit trigger phrase.
func WantsExit(message string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range exitTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// WantsAssessment reports whether the message should start the assessment.
// Single-token messages never trigger, so a bare "roadmap" stays free-form.
func WantsAssessment(message string) bool {
	if WantsExit(message) {
		return false
	}
	if len(strings.Fields(message)) <= 1 {
		return false
	}
	lower := strings.ToLower(message)
	for _, trigger := range startTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// Decide maps the current flow state and message to an action. A start
// trigger arriving mid-assessment is treated as an answer, never a restart.
func Decide(state models.FlowState, message string) Decision {
	if state.InAssessment() {
		if WantsExit(message) {
			return ExitAssessment
		}
		return ContinueAssessment
	}
	if WantsAssessment(message) {
		return StartAssessment
	}
	return FreeForm
}
