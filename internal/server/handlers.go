package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	stderrors "career-mentor/internal/common/errors"
	"career-mentor/internal/models"
	"career-mentor/internal/session"
)

var messageSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"message"},
	"properties": map[string]interface{}{
		"message":   map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 1000},
		"sessionId": map[string]interface{}{"type": "string"},
		"userId":    map[string]interface{}{"type": "string"},
		"context":   map[string]interface{}{"type": "object"},
	},
}

var feedbackSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"messageId", "rating"},
	"properties": map[string]interface{}{
		"messageId": map[string]interface{}{"type": "string", "minLength": 1},
		"rating":    map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 5},
		"feedback":  map[string]interface{}{"type": "string"},
		"sessionId": map[string]interface{}{"type": "string"},
	},
}

type messageRequest struct {
	Message   string              `json:"message"`
	SessionID string              `json:"sessionId"`
	UserID    string              `json:"userId"`
	Context   *models.UserProfile `json:"context"`
}

type feedbackRequest struct {
	MessageID string `json:"messageId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
	SessionID string `json:"sessionId"`
}

// chatMessage is one entry of the conversation payload the client renders.
type chatMessage struct {
	ID               string                `json:"id"`
	Text             string                `json:"text"`
	Sender           string                `json:"sender"`
	Timestamp        time.Time             `json:"timestamp"`
	Intent           string                `json:"intent,omitempty"`
	Confidence       float64               `json:"confidence,omitempty"`
	Sentiment        string                `json:"sentiment,omitempty"`
	QuickReplies     []string              `json:"quickReplies,omitempty"`
	SuggestedActions []string              `json:"suggestedActions,omitempty"`
	Flow             *models.FlowProgress  `json:"flow,omitempty"`
	CareerMatches    []models.MatchResult  `json:"careerMatches,omitempty"`
	Roadmap          *models.Roadmap       `json:"roadmap,omitempty"`
}

// validateBody decodes the request body and checks it against the schema.
// The decoded generic document doubles as the schema input so numeric types
// validate the way the schema expects.
func validateBody(r *http.Request, schema map[string]interface{}, dst interface{}) []string {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return []string{"body must be valid JSON"}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []string{err.Error()}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errs
	}

	raw, _ := json.Marshal(doc)
	if err := json.Unmarshal(raw, dst); err != nil {
		return []string{"body does not match the expected shape"}
	}
	return nil
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if errs := validateBody(r, messageSchema, &req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	result, err := s.engine.ProcessTurn(r.Context(), req.SessionID, req.Message, req.Context)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	now := time.Now().UTC()
	conversation := []chatMessage{
		{
			ID:        uuid.NewString(),
			Text:      req.Message,
			Sender:    "user",
			Timestamp: now,
			Intent:    result.Intent,
			Sentiment: result.Sentiment,
		},
		{
			ID:               uuid.NewString(),
			Text:             result.Message,
			Sender:           "bot",
			Timestamp:        now,
			Intent:           result.Intent,
			Confidence:       result.Confidence,
			QuickReplies:     result.QuickReplies,
			SuggestedActions: result.SuggestedActions,
			Flow:             result.Flow,
			CareerMatches:    result.CareerMatches,
			Roadmap:          result.Roadmap,
		},
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"conversation": conversation,
			"sessionId":    result.SessionID,
			"suggestions":  s.engine.Suggestions(),
		},
		"message": "Message processed successfully",
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	history, err := s.engine.History(r.Context(), sessionID)
	if err == session.ErrNotFound {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Session not found",
		})
		return
	}
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"sessionId": sessionID,
			"history":   history,
		},
	})
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	if err := s.engine.ClearConversation(r.Context(), sessionID); err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation cleared successfully",
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"suggestions": s.engine.Suggestions(),
		},
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if errs := validateBody(r, feedbackSchema, &req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	err := s.engine.SubmitFeedback(r.Context(), models.Feedback{
		MessageID: req.MessageID,
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Comment:   req.Feedback,
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Feedback submitted successfully",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeEngineError maps engine error codes onto HTTP statuses. Retryable
// codes become a 503 carrying the retry budget; anything unclassified gets
// the fallback reply so the client still has something to render.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	code := stderrors.CodeOf(err)
	switch {
	case code == stderrors.ErrCodeValidationFailed:
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
	case stderrors.IsRetryableErrorCode(code):
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"success":    false,
			"message":    "Service temporarily unavailable, please retry",
			"retryable":  true,
			"maxRetries": stderrors.GetRetryCount(code),
		})
	default:
		s.log.Error("unhandled engine error", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		fallback := s.engine.Fallback()
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":          false,
			"message":          fallback.Message,
			"suggestedActions": fallback.SuggestedActions,
		})
	}
}

func writeValidationErrors(w http.ResponseWriter, errs []string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"errors":  errs,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
