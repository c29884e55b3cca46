package quote

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for quotes
type Repository interface {
	shared.OwnedRepository[Quote]
	FindByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*Quote, error)
}

// TemplateRepository defines persistence operations for quote templates
type TemplateRepository interface {
	shared.OwnedRepository[Template]
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}
