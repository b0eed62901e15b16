package gaps

import (
	"fmt"

	"career-mentor/internal/models"
)

const defaultTimeToLearn = "2-3 months"

// defaultLookup is the built-in estimate and resource table.
type defaultLookup struct{}

// NewDefaultLookup returns the in-memory skill lookup table.
func NewDefaultLookup() Lookup {
	return defaultLookup{}
}

var timeToLearnTable = map[string]map[string]string{
	"Python":           {"part-time": "2-3 months", "full-time": "4-6 weeks", "weekends": "3-4 months"},
	"JavaScript":       {"part-time": "2-3 months", "full-time": "4-6 weeks", "weekends": "3-4 months"},
	"SQL":              {"part-time": "1-2 months", "full-time": "2-3 weeks", "weekends": "2-3 months"},
	"Machine Learning": {"part-time": "4-6 months", "full-time": "2-3 months", "weekends": "6-8 months"},
	"React":            {"part-time": "2-3 months", "full-time": "4-6 weeks", "weekends": "3-4 months"},
}

// TimeToLearn never fails: unknown skill/commitment pairs get the default.
func (defaultLookup) TimeToLearn(skill, timeCommitment string) string {
	if byCommitment, ok := timeToLearnTable[skill]; ok {
		if estimate, ok := byCommitment[timeCommitment]; ok {
			return estimate
		}
	}
	return defaultTimeToLearn
}

var resourceTable = map[string][]models.LearningResource{
	"Python": {
		{
			Title:      "Python for Everybody Specialization",
			Type:       "course",
			Provider:   "Coursera",
			URL:        "https://coursera.org/specializations/python",
			Duration:   "8 weeks",
			Cost:       "paid",
			Difficulty: "beginner",
		},
		{
			Title:      "Automate the Boring Stuff with Python",
			Type:       "book",
			Provider:   "Al Sweigart",
			URL:        "https://automatetheboringstuff.com/",
			Duration:   "6 weeks",
			Cost:       "free",
			Difficulty: "beginner",
		},
	},
	"JavaScript": {
		{
			Title:      "The Complete JavaScript Course",
			Type:       "course",
			Provider:   "Udemy",
			URL:        "https://udemy.com/course/the-complete-javascript-course/",
			Duration:   "12 weeks",
			Cost:       "paid",
			Difficulty: "beginner",
		},
	},
	"SQL": {
		{
			Title:      "SQL for Data Science",
			Type:       "course",
			Provider:   "Coursera",
			URL:        "https://coursera.org/learn/sql-for-data-science",
			Duration:   "4 weeks",
			Cost:       "paid",
			Difficulty: "beginner",
		},
	},
}

// Resources falls back to a generic entry for skills outside the table.
func (defaultLookup) Resources(skill string) []models.LearningResource {
	if resources, ok := resourceTable[skill]; ok {
		out := make([]models.LearningResource, len(resources))
		copy(out, resources)
		return out
	}
	return []models.LearningResource{
		{
			Title:      fmt.Sprintf("Learn %s", skill),
			Type:       "course",
			Provider:   "Various",
			Duration:   "4-8 weeks",
			Cost:       "free",
			Difficulty: "beginner",
		},
	}
}
