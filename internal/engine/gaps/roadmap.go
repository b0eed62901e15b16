package gaps

import (
	"fmt"
	"math"

	"career-mentor/internal/models"
)

var phaseThreeProjects = []string{
	"Build portfolio projects",
	"Contribute to open source",
	"Network with professionals",
}

var projectTable = map[string][]string{
	"Python":           {"Build a data analysis script", "Create a web scraper"},
	"JavaScript":       {"Build a todo app", "Create an interactive webpage"},
	"SQL":              {"Design a database schema", "Write complex queries"},
	"Machine Learning": {"Build a prediction model", "Create a data visualization"},
	"React":            {"Build a portfolio website", "Create a dynamic web app"},
}

// BuildRoadmap turns a gap list into at most three ordered phases plus
// milestones. It never fails: an empty gap list still yields the fixed
// real-world-experience phase.
func BuildRoadmap(profile models.UserProfile, career models.CareerProfile, skillGaps []models.SkillGap, lookup Lookup) models.Roadmap {
	criticalSkills := skillsByPriority(skillGaps, models.GapCritical)
	importantSkills := skillsByPriority(skillGaps, models.GapImportant)

	var phases []models.RoadmapPhase

	if len(criticalSkills) > 0 {
		top := criticalSkills
		if len(top) > 3 {
			top = top[:3]
		}
		phases = append(phases, models.RoadmapPhase{
			Phase:       1,
			Title:       "Foundation Skills",
			Duration:    phaseDuration(len(criticalSkills), profile.TimeCommitment),
			Description: "Master the essential skills required for this career",
			Skills:      top,
			Resources:   resourcesFor(top, lookup),
			Projects:    projectsFor(top),
		})
	}

	if len(importantSkills) > 0 {
		phases = append(phases, models.RoadmapPhase{
			Phase:       2,
			Title:       "Advanced Skills & Specialization",
			Duration:    phaseDuration(len(importantSkills), profile.TimeCommitment),
			Description: "Develop specialized skills and build expertise",
			Skills:      importantSkills,
			Resources:   resourcesFor(importantSkills, lookup),
			Projects:    projectsFor(importantSkills),
		})
	}

	phases = append(phases, models.RoadmapPhase{
		Phase:       len(phases) + 1,
		Title:       "Real-World Experience",
		Duration:    "3-6 months",
		Description: "Apply your skills through projects and gain practical experience",
		Skills:      []string{"Portfolio Development", "Networking", "Interview Preparation"},
		Projects:    phaseThreeProjects,
	})

	totalMonths := 0
	for _, phase := range phases {
		totalMonths += leadingMonths(phase.Duration)
	}

	firstSkill := "foundation skills"
	if len(phases[0].Skills) > 0 {
		firstSkill = phases[0].Skills[0]
	}

	return models.Roadmap{
		CareerID:           career.ID,
		CareerTitle:        career.Title,
		Timeline:           formatTimeline(totalMonths, profile.TimeCommitment),
		TotalEstimatedTime: fmt.Sprintf("%d-%d months", totalMonths, totalMonths+3),
		Phases:             phases,
		SkillGaps:          skillGaps,
		Milestones:         buildMilestones(phases),
		NextSteps: []string{
			fmt.Sprintf("Start with %s", firstSkill),
			"Set up your learning environment",
			"Join relevant communities",
			"Begin your first project",
		},
	}
}

// phaseDuration scales with how much time the user can give: one month per
// skill full-time, two part-time, three for weekends (or unset).
func phaseDuration(skillCount int, timeCommitment string) string {
	factor := 3
	switch timeCommitment {
	case "full-time":
		factor = 1
	case "part-time":
		factor = 2
	}
	baseMonths := skillCount * factor
	return fmt.Sprintf("%d-%d months", baseMonths, baseMonths+1)
}

func formatTimeline(months int, timeCommitment string) string {
	switch timeCommitment {
	case "full-time":
		return fmt.Sprintf("%d-%d months (full-time)", int(math.Ceil(float64(months)*0.7)), months)
	case "weekends":
		return fmt.Sprintf("%d-%d months (weekends only)", months, months+6)
	default:
		return fmt.Sprintf("%d-%d months (part-time)", months, months+3)
	}
}

// leadingMonths parses the first number out of a "N-M months" duration.
func leadingMonths(duration string) int {
	var n int
	fmt.Sscanf(duration, "%d", &n)
	return n
}

func buildMilestones(phases []models.RoadmapPhase) []models.Milestone {
	milestones := make([]models.Milestone, 0, len(phases))
	for i, phase := range phases {
		milestones = append(milestones, models.Milestone{
			Title:       fmt.Sprintf("Complete %s", phase.Title),
			Description: phase.Description,
			TargetDate:  fmt.Sprintf("Month %d", (i+1)*3),
			Skills:      phase.Skills,
		})
	}
	return milestones
}

func resourcesFor(skills []string, lookup Lookup) []models.LearningResource {
	var out []models.LearningResource
	for _, skill := range skills {
		out = append(out, lookup.Resources(skill)...)
	}
	return out
}

func projectsFor(skills []string) []string {
	var out []string
	for _, skill := range skills {
		if projects, ok := projectTable[skill]; ok {
			out = append(out, projects...)
			continue
		}
		out = append(out, fmt.Sprintf("Practice %s fundamentals", skill))
	}
	return out
}
