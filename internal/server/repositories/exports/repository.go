// Package exports records the object keys of archived table CSV exports.
package exports

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tableID int64, objectKey string) (*models.TableExport, error)

	// Latest returns the newest export of tableID or common.ErrorNotFound.
	Latest(ctx context.Context, tableID int64) (*models.TableExport, error)
}
