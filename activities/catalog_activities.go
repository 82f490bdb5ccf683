package activities

import (
	"context"
	"time"

	"shopbot/catalog"
	"shopbot/config"
	"shopbot/models"

	"go.temporal.io/sdk/activity"
)

// CatalogActivities serves reads of the fixed product catalog
type CatalogActivities struct {
	fetchDelay time.Duration
}

// NewCatalogActivities creates a new CatalogActivities instance
func NewCatalogActivities(cfg config.Config) *CatalogActivities {
	return &CatalogActivities{
		fetchDelay: cfg.Latency.Products.Std(),
	}
}

// GetProducts returns the catalog products matching ids, or the whole
// catalog when ids is empty.
func (a *CatalogActivities) GetProducts(ctx context.Context, ids []int) ([]models.Product, error) {
	logger := activity.GetLogger(ctx)

	if err := simulateLatency(ctx, a.fetchDelay); err != nil {
		return nil, err
	}

	products := catalog.ByIDs(ids)
	logger.Info("Catalog fetched", "requested", len(ids), "returned", len(products))
	return products, nil
}
