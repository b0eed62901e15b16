// Package gaps derives missing skills for a target career and turns them
// into a phased learning roadmap.
package gaps

import (
	"sort"

	"career-mentor/internal/models"
)

const (
	criticalRequiredLevel  = 70
	importantRequiredLevel = 50
)

// Lookup resolves per-skill estimates and resources. The default table is
// small and in-memory; a larger backing store can replace it without
// touching the gap rules.
type Lookup interface {
	TimeToLearn(skill, timeCommitment string) string
	Resources(skill string) []models.LearningResource
}

// Analyze lists every career skill the profile does not cover. Missing
// required skills are critical at level 70; missing optional skills (not
// already listed as required) are important at level 50. Critical gaps sort
// first; catalog skill order holds within each tier.
func Analyze(profile models.UserProfile, career models.CareerProfile, lookup Lookup) []models.SkillGap {
	gaps := make([]models.SkillGap, 0, len(career.RequiredSkills)+len(career.OptionalSkills))

	for _, skill := range career.RequiredSkills {
		if profile.HasSkill(skill) {
			continue
		}
		gaps = append(gaps, models.SkillGap{
			Skill:         skill,
			CurrentLevel:  0,
			RequiredLevel: criticalRequiredLevel,
			Priority:      models.GapCritical,
			TimeToLearn:   lookup.TimeToLearn(skill, profile.TimeCommitment),
			Resources:     lookup.Resources(skill),
		})
	}

	for _, skill := range career.OptionalSkills {
		if profile.HasSkill(skill) || containsSkill(career.RequiredSkills, skill) {
			continue
		}
		gaps = append(gaps, models.SkillGap{
			Skill:         skill,
			CurrentLevel:  0,
			RequiredLevel: importantRequiredLevel,
			Priority:      models.GapImportant,
			TimeToLearn:   lookup.TimeToLearn(skill, profile.TimeCommitment),
			Resources:     lookup.Resources(skill),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Priority == models.GapCritical && gaps[j].Priority != models.GapCritical
	})

	return gaps
}

func containsSkill(list []string, skill string) bool {
	for _, s := range list {
		if s == skill {
			return true
		}
	}
	return false
}

func skillsByPriority(gaps []models.SkillGap, priority models.GapPriority) []string {
	var out []string
	for _, gap := range gaps {
		if gap.Priority == priority {
			out = append(out, gap.Skill)
		}
	}
	return out
}
