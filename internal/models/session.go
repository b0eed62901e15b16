package models

import (
	"time"
)

// FlowName identifies which dialogue mode a session is in.
type FlowName string

const (
	FlowFreeForm   FlowName = "free_form"
	FlowAssessment FlowName = "assessment"
)

// FlowState tracks where a session stands in the guided assessment.
type FlowState struct {
	Name              FlowName `json:"name"`
	Step              int      `json:"step"`
	PendingQuestionID string   `json:"pendingQuestionId,omitempty"`
}

// InAssessment reports whether the session is mid-assessment.
func (f FlowState) InAssessment() bool {
	return f.Name == FlowAssessment
}

// UserProfile accumulates what the engine has learned about the user.
type UserProfile struct {
	Name            string   `json:"name,omitempty"`
	CurrentSkills   []string `json:"currentSkills,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"` // beginner | intermediate | advanced | expert
	CareerGoals     []string `json:"careerGoals,omitempty"`
	LearningStyle   string   `json:"learningStyle,omitempty"`  // hands-on | structured | self-paced | mentored
	TimeCommitment  string   `json:"timeCommitment,omitempty"` // part-time | full-time | weekends
}

// HasSkill reports whether the profile lists the given skill.
func (p UserProfile) HasSkill(skill string) bool {
	for _, s := range p.CurrentSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.CurrentSkills = append([]string(nil), p.CurrentSkills...)
	out.Interests = append([]string(nil), p.Interests...)
	out.CareerGoals = append([]string(nil), p.CareerGoals...)
	return out
}

// TurnRole distinguishes who produced a conversation turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one utterance in the session history.
type ConversationTurn struct {
	ID        string    `json:"id"`
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Intent    string    `json:"intent,omitempty"`
	Sentiment string    `json:"sentiment,omitempty"`
}

// SessionState is everything the engine persists for one conversation.
type SessionState struct {
	SessionID  string             `json:"sessionId" db:"session_id"`
	UserID     string             `json:"userId,omitempty" db:"user_id"`
	Profile    UserProfile        `json:"profile"`
	History    []ConversationTurn `json:"history"`
	Flow       FlowState          `json:"flow"`
	CreatedAt  time.Time          `json:"createdAt" db:"created_at"`
	LastActive time.Time          `json:"lastActive" db:"last_active"`
}

// NewSessionState creates a fresh free-form session.
func NewSessionState(sessionID string) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		SessionID:  sessionID,
		Flow:       FlowState{Name: FlowFreeForm},
		CreatedAt:  now,
		LastActive: now,
	}
}

// AppendTurn adds a turn and drops the oldest entries beyond limit.
func (s *SessionState) AppendTurn(turn ConversationTurn, limit int) {
	s.History = append(s.History, turn)
	if limit > 0 && len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
}

// UpdateActivity refreshes the idle-expiry clock.
func (s *SessionState) UpdateActivity() {
	s.LastActive = time.Now().UTC()
}

// IsExpired reports whether the session idled past ttl.
func (s *SessionState) IsExpired(ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(s.LastActive) > ttl
}

// Clone returns a deep copy so a failed turn never leaks partial writes.
func (s *SessionState) Clone() *SessionState {
	out := *s
	out.Profile = s.Profile.Clone()
	out.History = append([]ConversationTurn(nil), s.History...)
	return &out
}
