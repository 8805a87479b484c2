package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type Seeder interface {
	Run(ctx context.Context) (int, error)
}

type SeedHandler struct {
	seeder Seeder
}

func NewSeedHandler(s Seeder) *SeedHandler {
	return &SeedHandler{seeder: s}
}

// RunSeed wipes the catalog and loads the fixture products
// POST /api/v1/seed
func (h *SeedHandler) RunSeed(c *fiber.Ctx) error {
	n, err := h.seeder.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seed executed", "products": n})
}
