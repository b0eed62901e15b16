// Package engine orchestrates one conversation turn: classification, flow
// decisions, matching, and persistence.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"career-mentor/internal/catalog"
	stderrors "career-mentor/internal/common/errors"
	"career-mentor/internal/common/logger"
	"career-mentor/internal/common/observability"
	"career-mentor/internal/engine/gaps"
	"career-mentor/internal/engine/intent"
	"career-mentor/internal/engine/respond"
	"career-mentor/internal/models"
	"career-mentor/internal/session"
)

const defaultHistoryLimit = 30

// Options tunes engine construction. Zero values fall back to defaults.
type Options struct {
	HistoryLimit int
	StoreName    string // metric label: memory | redis
	Picker       respond.Picker
	Obs          *observability.Observability
}

// Engine is the conversation core. It is safe for concurrent use; turns on
// the same session serialize on a per-session lock.
type Engine struct {
	store        session.Store
	catalog      catalog.Catalog
	classifier   *intent.Classifier
	synth        *respond.Synthesizer
	lookup       gaps.Lookup
	log          logger.Logger
	obs          *observability.Observability
	historyLimit int
	storeName    string

	locks sync.Map // sessionID -> *sync.Mutex

	feedbackMu sync.Mutex
	feedback   []models.Feedback
}

// New wires an Engine from its collaborators.
func New(store session.Store, cat catalog.Catalog, log logger.Logger, opts Options) *Engine {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.StoreName == "" {
		opts.StoreName = "memory"
	}
	if opts.Picker == nil {
		opts.Picker = respond.NewRandPicker(time.Now().UnixNano())
	}
	return &Engine{
		store:        store,
		catalog:      cat,
		classifier:   intent.NewClassifier(),
		synth:        respond.NewSynthesizer(opts.Picker),
		lookup:       gaps.NewDefaultLookup(),
		log:          log,
		obs:          opts.Obs,
		historyLimit: opts.HistoryLimit,
		storeName:    opts.StoreName,
	}
}

func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	actual, _ := e.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// History returns the stored conversation turns for a session. Expired
// sessions read as absent.
func (e *Engine) History(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	state, err := e.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, stderrors.NewStoreUnavailableError(err)
	}
	return state.History, nil
}

// Fallback is the reply handed to clients when a turn fails internally.
func (e *Engine) Fallback() respond.Reply {
	return e.synth.Fallback()
}

// ClearConversation drops a session entirely.
func (e *Engine) ClearConversation(ctx context.Context, sessionID string) error {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.store.Delete(ctx, sessionID); err != nil {
		return stderrors.NewStoreUnavailableError(err)
	}
	e.log.Info("conversation cleared", map[string]interface{}{"sessionId": sessionID})
	return nil
}

// UpdateProfile merges explicit profile updates into a session, creating the
// session when it does not exist yet.
func (e *Engine) UpdateProfile(ctx context.Context, sessionID string, updates models.UserProfile) error {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		state = models.NewSessionState(sessionID)
	} else if err != nil {
		return stderrors.NewStoreUnavailableError(err)
	}

	mergeProfile(&state.Profile, updates, e.log, sessionID)
	state.UpdateActivity()

	if err := e.store.Put(ctx, state); err != nil {
		return stderrors.NewStoreUnavailableError(err)
	}
	return nil
}

// SubmitFeedback records a message rating.
func (e *Engine) SubmitFeedback(ctx context.Context, fb models.Feedback) error {
	if fb.MessageID == "" || fb.Rating < 1 || fb.Rating > 5 {
		return stderrors.NewValidationFailedError("messageId required and rating must be 1-5")
	}
	fb.CreatedAt = time.Now().UTC()

	e.feedbackMu.Lock()
	e.feedback = append(e.feedback, fb)
	e.feedbackMu.Unlock()

	e.log.Info("feedback received", map[string]interface{}{
		"messageId": fb.MessageID,
		"sessionId": fb.SessionID,
		"rating":    fb.Rating,
	})
	return nil
}

// FeedbackCount reports how many ratings have been recorded.
func (e *Engine) FeedbackCount() int {
	e.feedbackMu.Lock()
	defer e.feedbackMu.Unlock()
	return len(e.feedback)
}

// SessionFeedback returns the ratings recorded for one session.
func (e *Engine) SessionFeedback(sessionID string) []models.Feedback {
	e.feedbackMu.Lock()
	defer e.feedbackMu.Unlock()

	var out []models.Feedback
	for _, fb := range e.feedback {
		if fb.SessionID == sessionID {
			out = append(out, fb)
		}
	}
	return out
}

var cannedSuggestions = []string{
	"How do I choose the right career path?",
	"What skills are in high demand in tech?",
	"How can I transition to a new industry?",
	"What's the average salary for data scientists?",
	"How do I improve my resume?",
	"What are the best programming languages to learn?",
	"How do I prepare for technical interviews?",
	"What soft skills are most important?",
	"How do I build a professional network?",
	"What are emerging career opportunities?",
}

// Suggestions returns conversation starters for the client UI.
func (e *Engine) Suggestions() []string {
	out := make([]string, len(cannedSuggestions))
	copy(out, cannedSuggestions)
	return out
}

var (
	validExperienceLevels = map[string]bool{"beginner": true, "intermediate": true, "advanced": true, "expert": true}
	validLearningStyles   = map[string]bool{"hands-on": true, "structured": true, "self-paced": true, "mentored": true}
	validTimeCommitments  = map[string]bool{"part-time": true, "full-time": true, "weekends": true}
)

// mergeProfile applies non-empty hint fields. Fields outside their allowed
// vocabulary are skipped with a warning rather than failing the turn.
func mergeProfile(dst *models.UserProfile, src models.UserProfile, log logger.Logger, sessionID string) {
	skip := func(field, value string) {
		log.Warn("skipping invalid profile hint", map[string]interface{}{
			"sessionId": sessionID,
			"field":     field,
			"value":     value,
		})
	}

	if src.Name != "" {
		dst.Name = src.Name
	}
	if len(src.CurrentSkills) > 0 {
		dst.CurrentSkills = append([]string(nil), src.CurrentSkills...)
	}
	if len(src.Interests) > 0 {
		dst.Interests = append([]string(nil), src.Interests...)
	}
	if len(src.CareerGoals) > 0 {
		dst.CareerGoals = append([]string(nil), src.CareerGoals...)
	}
	if src.ExperienceLevel != "" {
		if validExperienceLevels[src.ExperienceLevel] {
			dst.ExperienceLevel = src.ExperienceLevel
		} else {
			skip("experienceLevel", src.ExperienceLevel)
		}
	}
	if src.LearningStyle != "" {
		if validLearningStyles[src.LearningStyle] {
			dst.LearningStyle = src.LearningStyle
		} else {
			skip("learningStyle", src.LearningStyle)
		}
	}
	if src.TimeCommitment != "" {
		if validTimeCommitments[src.TimeCommitment] {
			dst.TimeCommitment = src.TimeCommitment
		} else {
			skip("timeCommitment", src.TimeCommitment)
		}
	}
}
