// Package match scores catalog careers against a user profile.
package match

import (
	"math"
	"sort"

	"career-mentor/internal/models"
)

// careerInterestMap binds catalog career ids to the interest options the
// assessment offers. Kept separate from the catalog rows on purpose: the
// options belong to the assessment script, not the career data.
var careerInterestMap = map[string][]string{
	"data-scientist":    {"Analyzing data and finding patterns", "Working with AI and machine learning"},
	"software-engineer": {"Building apps and websites"},
	"product-manager":   {"Managing teams and products"},
	"ux-designer":       {"Designing user experiences"},
	"devops-engineer":   {"Solving technical infrastructure problems"},
}

// Rank scores every career and returns the list sorted descending by
// score. The sort is stable, so equal scores keep catalog order.
func Rank(profile models.UserProfile, catalog []models.CareerProfile) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(catalog))
	for _, career := range catalog {
		factors := Factors(profile, career)
		results = append(results, models.MatchResult{
			Career:     career,
			MatchScore: weighted(factors),
			Factors:    factors,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}

// Score computes the 0-100 weighted fit of one career.
// Weights: skills 40%, interests 30%, experience 20%, goals 10%.
func Score(profile models.UserProfile, career models.CareerProfile) int {
	return weighted(Factors(profile, career))
}

func weighted(f models.MatchFactors) int {
	score := f.SkillsFit*40 + f.InterestsFit*30 + f.ExperienceFit*20 + f.GoalsFit*10
	return int(math.Round(score))
}

// Factors exposes the normalized sub-scores for one career.
func Factors(profile models.UserProfile, career models.CareerProfile) models.MatchFactors {
	return models.MatchFactors{
		SkillsFit:     skillsFit(profile.CurrentSkills, career),
		InterestsFit:  interestsFit(profile.Interests, career),
		ExperienceFit: experienceFit(profile.ExperienceLevel),
		GoalsFit:      goalsFit(profile.CareerGoals),
	}
}

func skillsFit(currentSkills []string, career models.CareerProfile) float64 {
	hits := 0
	for _, skill := range currentSkills {
		if contains(career.RequiredSkills, skill) || contains(career.OptionalSkills, skill) {
			hits++
		}
	}
	return float64(hits) / math.Max(float64(len(career.RequiredSkills)), 1)
}

func interestsFit(interests []string, career models.CareerProfile) float64 {
	careerInterests := careerInterestMap[career.ID]
	hits := 0
	for _, interest := range interests {
		if contains(careerInterests, interest) {
			hits++
		}
	}
	return float64(hits) / math.Max(float64(len(interests)), 1)
}

// experienceFit is constant: every catalog career accepts every experience
// level. A deliberate simplification, not a bug.
func experienceFit(string) float64 {
	return 1.0
}

func goalsFit(goals []string) float64 {
	if len(goals) > 0 {
		return 1.0
	}
	return 0.5
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
