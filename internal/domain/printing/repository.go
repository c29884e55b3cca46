package printing

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TemplateRepository defines persistence operations for print templates
type TemplateRepository interface {
	shared.OwnedRepository[PrintTemplate]
	FindDefault(ctx context.Context, ownerID uuid.UUID) (*PrintTemplate, error)
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}

// JobRepository defines persistence operations for print jobs
type JobRepository interface {
	shared.OwnedRepository[PrintJob]
	FindByQuote(ctx context.Context, ownerID, quoteID uuid.UUID) ([]PrintJob, error)
}
