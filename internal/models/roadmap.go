package models

// GapPriority ranks how urgently a missing skill must be learned.
type GapPriority string

const (
	GapCritical  GapPriority = "critical"
	GapImportant GapPriority = "important"
)

// SkillGap describes one skill the user still has to acquire for a career.
type SkillGap struct {
	Skill         string             `json:"skill"`
	CurrentLevel  int                `json:"currentLevel"`
	RequiredLevel int                `json:"requiredLevel"`
	Priority      GapPriority        `json:"priority"`
	TimeToLearn   string             `json:"timeToLearn"`
	Resources     []LearningResource `json:"resources"`
}

// RoadmapPhase groups skills and resources into one learning stage.
type RoadmapPhase struct {
	Phase       int                `json:"phase"`
	Title       string             `json:"title"`
	Duration    string             `json:"duration"`
	Description string             `json:"description"`
	Skills      []string           `json:"skills"`
	Resources   []LearningResource `json:"resources,omitempty"`
	Projects    []string           `json:"projects,omitempty"`
}

// Milestone marks a checkpoint on the roadmap timeline.
type Milestone struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TargetDate  string   `json:"targetDate"`
	Skills      []string `json:"skills"`
}

// Roadmap is the personalized plan toward a target career.
type Roadmap struct {
	CareerID           string         `json:"careerId"`
	CareerTitle        string         `json:"careerTitle"`
	Timeline           string         `json:"timeline"`
	TotalEstimatedTime string         `json:"totalEstimatedTime"`
	Phases             []RoadmapPhase `json:"phases"`
	SkillGaps          []SkillGap     `json:"skillGaps"`
	Milestones         []Milestone    `json:"milestones"`
	NextSteps          []string       `json:"nextSteps"`
}
