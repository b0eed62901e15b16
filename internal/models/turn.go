package models

import "time"

// FlowProgress reports assessment position to the caller.
type FlowProgress struct {
	CurrentStep string `json:"currentStep"`
	Progress    int    `json:"progress"` // percent, 0-100
}

// TurnResult is what one processed turn hands back to the caller.
type TurnResult struct {
	SessionID        string        `json:"sessionId"`
	Message          string        `json:"message"`
	Intent           string        `json:"intent"`
	Confidence       float64       `json:"confidence"`
	Sentiment        string        `json:"sentiment"`
	QuickReplies     []string      `json:"quickReplies,omitempty"`
	SuggestedActions []string      `json:"suggestedActions,omitempty"`
	Flow             *FlowProgress `json:"flow,omitempty"`
	CareerMatches    []MatchResult `json:"careerMatches,omitempty"`
	Roadmap          *Roadmap      `json:"roadmap,omitempty"`
}

// Feedback is a user rating for one assistant message.
type Feedback struct {
	MessageID string    `json:"messageId"`
	SessionID string    `json:"sessionId"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
