package models

// SalaryBand holds annual salary figures per seniority level.
type SalaryBand struct {
	Entry  int `json:"entry"`
	Mid    int `json:"mid"`
	Senior int `json:"senior"`
}

// CareerProfile is one entry in the career catalog.
type CareerProfile struct {
	ID              string     `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	Salary          SalaryBand `json:"averageSalary"`
	GrowthRate      string     `json:"growthRate" db:"growth_rate"`
	RequiredSkills  []string   `json:"requiredSkills"`
	OptionalSkills  []string   `json:"optionalSkills"`
	Industries      []string   `json:"industries"`
	WorkEnvironment []string   `json:"workEnvironment"`
}

// MatchResult pairs a catalog career with its 0-100 fit score and the
// sub-scores the score was built from.
type MatchResult struct {
	Career     CareerProfile `json:"career"`
	MatchScore int           `json:"matchScore"`
	Factors    MatchFactors  `json:"factors"`
}

// MatchFactors breaks a match score into its weighted components.
type MatchFactors struct {
	SkillsFit     float64 `json:"skillsFit"`
	InterestsFit  float64 `json:"interestsFit"`
	ExperienceFit float64 `json:"experienceFit"`
	GoalsFit      float64 `json:"goalsFit"`
}

// LearningResource points at one course, book or tutorial for a skill.
type LearningResource struct {
	Title      string `json:"title"`
	Type       string `json:"type"` // course | book | tutorial | practice
	Provider   string `json:"provider"`
	URL        string `json:"url,omitempty"`
	Duration   string `json:"duration"`
	Cost       string `json:"cost"`
	Difficulty string `json:"difficulty"`
}
