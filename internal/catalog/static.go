package catalog

import (
	"context"

	"career-mentor/internal/models"
)

// StaticCatalog serves the built-in career set. It is the default source and
// the fallback when no database is configured.
type StaticCatalog struct {
	careers []models.CareerProfile
}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{careers: builtinCareers}
}

// ListCareers returns a copy of the catalog in registration order.
func (c *StaticCatalog) ListCareers(ctx context.Context) ([]models.CareerProfile, error) {
	out := make([]models.CareerProfile, len(c.careers))
	copy(out, c.careers)
	return out, nil
}

var builtinCareers = []models.CareerProfile{
	{
		ID:          "data-scientist",
		Title:       "Data Scientist",
		Description: "Analyze complex data to help companies make better decisions using machine learning and statistical methods.",
		Salary:      models.SalaryBand{Entry: 85000, Mid: 120000, Senior: 165000},
		GrowthRate:  "22% by 2030 (Much faster than average)",
		RequiredSkills: []string{
			"Python", "SQL", "Statistics", "Machine Learning", "Data Visualization",
		},
		OptionalSkills: []string{
			"R", "Deep Learning", "Big Data", "Cloud Computing", "Business Intelligence",
		},
		Industries:      []string{"Technology", "Finance", "Healthcare", "E-commerce", "Consulting"},
		WorkEnvironment: []string{"Remote-friendly", "Collaborative", "Research-oriented", "Problem-solving"},
	},
	{
		ID:          "software-engineer",
		Title:       "Software Engineer",
		Description: "Design, develop, and maintain software applications and systems.",
		Salary:      models.SalaryBand{Entry: 75000, Mid: 110000, Senior: 150000},
		GrowthRate:  "25% by 2030 (Much faster than average)",
		RequiredSkills: []string{
			"Programming", "Problem Solving", "Debugging", "Version Control", "Testing",
		},
		OptionalSkills: []string{
			"JavaScript", "Python", "Java", "React", "Node.js", "AWS", "Docker",
		},
		Industries:      []string{"Technology", "Finance", "Healthcare", "Gaming", "Startups"},
		WorkEnvironment: []string{"Remote-friendly", "Team-based", "Creative", "Continuous learning"},
	},
	{
		ID:          "product-manager",
		Title:       "Product Manager",
		Description: "Lead product strategy and development, working with cross-functional teams.",
		Salary:      models.SalaryBand{Entry: 90000, Mid: 130000, Senior: 180000},
		GrowthRate:  "15% by 2030 (Faster than average)",
		RequiredSkills: []string{
			"Product Strategy", "Market Research", "Communication", "Analytics", "Project Management",
		},
		OptionalSkills: []string{
			"SQL", "UX Design", "Agile", "Leadership", "Business Intelligence",
		},
		Industries:      []string{"Technology", "E-commerce", "Finance", "Healthcare", "Consumer Goods"},
		WorkEnvironment: []string{"Collaborative", "Strategic", "Customer-focused", "Fast-paced"},
	},
	{
		ID:          "ux-designer",
		Title:       "UX/UI Designer",
		Description: "Design user-friendly interfaces and experiences for digital products.",
		Salary:      models.SalaryBand{Entry: 65000, Mid: 95000, Senior: 130000},
		GrowthRate:  "13% by 2030 (Faster than average)",
		RequiredSkills: []string{
			"Design Thinking", "Prototyping", "User Research", "Visual Design", "Usability Testing",
		},
		OptionalSkills: []string{
			"Figma", "Adobe Creative Suite", "HTML/CSS", "JavaScript", "Psychology",
		},
		Industries:      []string{"Technology", "E-commerce", "Finance", "Healthcare", "Media"},
		WorkEnvironment: []string{"Creative", "User-focused", "Collaborative", "Innovation-driven"},
	},
	{
		ID:          "devops-engineer",
		Title:       "DevOps Engineer",
		Description: "Bridge development and operations to improve software deployment and infrastructure.",
		Salary:      models.SalaryBand{Entry: 80000, Mid: 115000, Senior: 155000},
		GrowthRate:  "20% by 2030 (Much faster than average)",
		RequiredSkills: []string{
			"Cloud Computing", "Docker", "CI/CD", "Linux", "Automation",
		},
		OptionalSkills: []string{
			"Kubernetes", "AWS", "Azure", "Terraform", "Monitoring", "Security",
		},
		Industries:      []string{"Technology", "Finance", "Healthcare", "E-commerce", "Gaming"},
		WorkEnvironment: []string{"Technical", "Problem-solving", "Automation-focused", "Remote-friendly"},
	},
}
