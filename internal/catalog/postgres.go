package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"career-mentor/internal/models"
)

const listCareersQuery = `
	SELECT id, title, description,
	       entry_salary, mid_salary, senior_salary,
	       growth_rate,
	       required_skills, optional_skills, industries, work_environment
	FROM career_paths
	ORDER BY position, id`

// PostgresCatalog reads career profiles from the career_paths table. Skill
// and industry lists are stored as JSON arrays.
type PostgresCatalog struct {
	db *sql.DB
}

// NewPostgresCatalog wraps an existing database handle.
func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (c *PostgresCatalog) ListCareers(ctx context.Context) ([]models.CareerProfile, error) {
	rows, err := c.db.QueryContext(ctx, listCareersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query careers: %w", err)
	}
	defer rows.Close()

	var careers []models.CareerProfile
	for rows.Next() {
		var (
			career                              models.CareerProfile
			required, optional, industries, env []byte
		)
		if err := rows.Scan(
			&career.ID, &career.Title, &career.Description,
			&career.Salary.Entry, &career.Salary.Mid, &career.Salary.Senior,
			&career.GrowthRate,
			&required, &optional, &industries, &env,
		); err != nil {
			return nil, fmt.Errorf("failed to scan career row: %w", err)
		}
		if err := decodeList(required, &career.RequiredSkills); err != nil {
			return nil, fmt.Errorf("career %s: bad required_skills: %w", career.ID, err)
		}
		if err := decodeList(optional, &career.OptionalSkills); err != nil {
			return nil, fmt.Errorf("career %s: bad optional_skills: %w", career.ID, err)
		}
		if err := decodeList(industries, &career.Industries); err != nil {
			return nil, fmt.Errorf("career %s: bad industries: %w", career.ID, err)
		}
		if err := decodeList(env, &career.WorkEnvironment); err != nil {
			return nil, fmt.Errorf("career %s: bad work_environment: %w", career.ID, err)
		}
		careers = append(careers, career)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate careers: %w", err)
	}
	return careers, nil
}

func decodeList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = nil
		return nil
	}
	return json.Unmarshal(raw, dst)
}
