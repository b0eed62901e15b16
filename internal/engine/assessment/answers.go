package assessment

import (
	"errors"
	"strings"

	"career-mentor/internal/models"
)

// ErrUnmappedAnswer marks an answer that cannot be applied to the current
// step. The flow re-asks the question instead of advancing.
var ErrUnmappedAnswer = errors.New("answer cannot be mapped to the current assessment step")

// ApplyAnswer writes one answer onto the profile fields owned by the given
// question. An empty or whitespace-only answer is rejected so garbage never
// corrupts the profile.
func ApplyAnswer(profile *models.UserProfile, questionID, answer string) error {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return ErrUnmappedAnswer
	}

	switch questionID {
	case "experience-level":
		profile.ExperienceLevel = mapExperienceLevel(trimmed)
	case "current-skills":
		profile.CurrentSkills = parseSkillSelection(trimmed)
	case "interests":
		profile.Interests = []string{trimmed}
	case "career-goals":
		profile.CareerGoals = []string{trimmed}
	case "learning-style":
		profile.LearningStyle = mapLearningStyle(trimmed)
	case "time-commitment":
		profile.TimeCommitment = mapTimeCommitment(trimmed)
	default:
		return ErrUnmappedAnswer
	}
	return nil
}

func mapExperienceLevel(answer string) string {
	switch answer {
	case "Complete beginner", "Some experience":
		return "beginner"
	case "Intermediate":
		return "intermediate"
	case "Advanced":
		return "advanced"
	case "Expert":
		return "expert"
	default:
		return "beginner"
	}
}

func mapLearningStyle(answer string) string {
	switch answer {
	case "Hands-on projects":
		return "hands-on"
	case "Structured courses":
		return "structured"
	case "Self-paced tutorials", "Reading documentation":
		return "self-paced"
	case "Working with a mentor":
		return "mentored"
	default:
		return "hands-on"
	}
}

func mapTimeCommitment(answer string) string {
	if strings.Contains(answer, "30+") || strings.Contains(answer, "20-30") {
		return "full-time"
	}
	if strings.Contains(strings.ToLower(answer), "weekend") {
		return "weekends"
	}
	return "part-time"
}

// parseSkillSelection splits a multi-select answer on commas and drops the
// "None of these" sentinel.
func parseSkillSelection(answer string) []string {
	parts := strings.Split(answer, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		skill := strings.TrimSpace(p)
		if skill == "" || skill == "None of these" {
			continue
		}
		skills = append(skills, skill)
	}
	return skills
}
