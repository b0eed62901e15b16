// Package catalog provides the career profiles the matcher ranks against.
package catalog

import (
	"context"

	"career-mentor/internal/models"
)

// Catalog lists the careers available for matching. Order is stable and
// meaningful: ties in match score keep catalog order.
type Catalog interface {
	ListCareers(ctx context.Context) ([]models.CareerProfile, error)
}
