// Package assessment holds the guided assessment script and the mapping
// from answers onto the user profile.
package assessment

// Question is one step of the guided assessment.
type Question struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"question"`
	Type     string   `json:"type"` // multiple-choice | multi-select
	Options  []string `json:"options,omitempty"`
	Category string   `json:"category"` // skills | interests | experience | goals | preferences
	FollowUp string   `json:"followUp,omitempty"`
}

var questions = []Question{
	{
		ID:       "experience-level",
		Prompt:   "What's your current experience level with technology/programming?",
		Type:     "multiple-choice",
		Options:  []string{"Complete beginner", "Some experience", "Intermediate", "Advanced", "Expert"},
		Category: "experience",
		FollowUp: "Perfect! This helps me understand your starting point.",
	},
	{
		ID:     "current-skills",
		Prompt: "Which of these skills do you currently have? (Select all that apply)",
		Type:   "multi-select",
		Options: []string{
			"Python", "JavaScript", "Java", "SQL", "HTML/CSS", "React", "Node.js",
			"Machine Learning", "Data Analysis", "Project Management", "Design",
			"Marketing", "None of these",
		},
		Category: "skills",
		FollowUp: "Great! I can see what you're working with.",
	},
	{
		ID:     "interests",
		Prompt: "What type of work interests you most?",
		Type:   "multiple-choice",
		Options: []string{
			"Analyzing data and finding patterns",
			"Building apps and websites",
			"Designing user experiences",
			"Managing teams and products",
			"Solving technical infrastructure problems",
			"Working with AI and machine learning",
		},
		Category: "interests",
		FollowUp: "Excellent! This shows me what motivates you.",
	},
	{
		ID:     "career-goals",
		Prompt: "What's your main career goal?",
		Type:   "multiple-choice",
		Options: []string{
			"Land my first tech job",
			"Switch to a new tech field",
			"Get promoted in my current role",
			"Start my own business",
			"Become a technical leader",
			"Work at a top tech company",
		},
		Category: "goals",
		FollowUp: "That's a great goal! Let me help you get there.",
	},
	{
		ID:       "learning-style",
		Prompt:   "How do you prefer to learn new skills?",
		Type:     "multiple-choice",
		Options:  []string{"Hands-on projects", "Structured courses", "Self-paced tutorials", "Working with a mentor", "Reading documentation"},
		Category: "preferences",
		FollowUp: "Perfect! I'll recommend resources that match your style.",
	},
	{
		ID:       "time-commitment",
		Prompt:   "How much time can you dedicate to learning each week?",
		Type:     "multiple-choice",
		Options:  []string{"5-10 hours", "10-20 hours", "20-30 hours", "30+ hours", "Weekends only"},
		Category: "preferences",
		FollowUp: "Great! This helps me create a realistic timeline for you.",
	},
}

// Questions returns the assessment script in order.
func Questions() []Question {
	return questions
}

// Count returns the number of assessment steps.
func Count() int {
	return len(questions)
}

// QuestionAt returns the question for a step, or false when the step is
// outside the script.
func QuestionAt(step int) (Question, bool) {
	if step < 0 || step >= len(questions) {
		return Question{}, false
	}
	return questions[step], true
}
