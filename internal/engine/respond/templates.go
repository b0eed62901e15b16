package respond

// templateEntry binds an intent to its response variants, the suggested
// actions shown as buttons, and the follow-up questions offered as quick
// replies.
type templateEntry struct {
	responses        []string
	suggestedActions []string
	quickReplies     []string
}

var templateBank = map[string]templateEntry{
	"career_choice": {
		responses: []string{
			"Choosing the right career involves understanding your strengths, interests, and market demand. Consider taking our skills assessment to get personalized recommendations!",
			"Great question! I'd recommend exploring different career paths based on your skills and interests. What field are you most curious about?",
			"Career selection is crucial for long-term satisfaction. Let's start by identifying your key skills and interests. What do you enjoy doing most?",
		},
		suggestedActions: []string{"Take skills assessment", "Explore career paths", "View salary information"},
		quickReplies: []string{
			"What skills are you strongest in?",
			"What industry interests you most?",
			"Would you like to explore specific career paths?",
		},
	},
	"skills_development": {
		responses: []string{
			"Skill development is key to career growth! Based on current market trends, here are some high-demand skills to consider developing.",
			"I can help you identify skill gaps and create a learning roadmap. What's your current field or target career?",
			"Continuous learning is essential in today's job market. Let me suggest some skills that are particularly valuable right now.",
		},
		suggestedActions: []string{"View trending skills", "Create learning plan", "Find courses"},
		quickReplies: []string{
			"What skills would you like to develop?",
			"How much time can you dedicate to learning?",
			"Are you looking for free or paid courses?",
		},
	},
	"job_search": {
		responses: []string{
			"Job searching can be overwhelming, but I'm here to help! Let's start by optimizing your approach based on your target role.",
			"Effective job searching involves multiple strategies. I can help you with resume optimization, networking tips, and interview preparation.",
			"The job market is competitive, but with the right strategy, you can stand out. What specific aspect of job searching would you like help with?",
		},
		suggestedActions: []string{"Resume tips", "Interview preparation", "Networking advice"},
		quickReplies: []string{
			"What type of role are you seeking?",
			"Do you need help with your resume?",
			"Would you like interview tips?",
		},
	},
	"salary_information": {
		responses: []string{
			"Salary ranges vary by location, experience, and industry. I can provide current market data for specific roles.",
			"Understanding compensation is important for career decisions. What role or industry are you interested in?",
			"Salary information helps in negotiation and career planning. Let me share some insights about compensation trends.",
		},
		suggestedActions: []string{"View salary data", "Compare roles", "Negotiation tips"},
		quickReplies: []string{
			"What role are you interested in?",
			"Which location or region?",
			"What's your experience level?",
		},
	},
	"education_training": {
		responses: []string{
			"Education and training are investments in your future. I can help you find the most effective learning paths for your goals.",
			"There are many ways to gain new skills - from formal education to online courses. What's your preferred learning style?",
			"Staying current with education and training is crucial. Let me suggest some options based on your career goals.",
		},
		suggestedActions: []string{"Find courses", "Certification programs", "Degree options"},
		quickReplies: []string{
			"What field do you want to study?",
			"Are you looking for online or in-person options?",
			"What's your budget for education?",
		},
	},
}

var generalResponses = []string{
	"That's a great question! I'm here to help with career guidance, skills development, and job search advice. Could you tell me more about what you're looking for?",
	"I'd be happy to help you with your career-related questions. Can you provide more details about your specific situation or goals?",
	"I specialize in career advice and skills development. What aspect of your professional journey would you like to discuss?",
	"Let me help you with that! I can assist with career planning, skill assessment, job search strategies, and more. What's your main concern?",
}

var defaultSuggestedActions = []string{
	"Explore our AI-powered recommendations",
	"Take a skills assessment",
	"View career paths",
}

var defaultQuickReplies = []string{
	"How can I help you further?",
	"Would you like specific recommendations?",
	"Any other questions about your career?",
}
