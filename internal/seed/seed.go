package seed

import (
	"context"
	"fmt"
	"log/slog"

	"go-catalog-ws/internal/service"
)

// Seeder resets the catalog to the fixture products
type Seeder struct {
	products service.ProductService
	fixtures []service.CreateProductRequest
	logger   *slog.Logger
}

func NewSeeder(products service.ProductService, logger *slog.Logger) *Seeder {
	return &Seeder{products: products, fixtures: Products, logger: logger}
}

// Run purges the catalog and inserts every fixture, returning how many were created
func (s *Seeder) Run(ctx context.Context) (int, error) {
	if err := s.products.PurgeAll(ctx); err != nil {
		return 0, fmt.Errorf("purge catalog: %w", err)
	}

	for i := range s.fixtures {
		req := s.fixtures[i]
		if _, err := s.products.Create(ctx, &req); err != nil {
			return i, fmt.Errorf("seed product %q: %w", req.Title, err)
		}
	}

	s.logger.InfoContext(ctx, "Seed executed", slog.Int("products", len(s.fixtures)))
	return len(s.fixtures), nil
}
