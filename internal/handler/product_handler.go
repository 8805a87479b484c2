package handler

import (
	"errors"

	"go-catalog-ws/internal/service"
	"go-catalog-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service      service.ProductService
	defaultLimit int
}

func NewProductHandler(s service.ProductService, defaultLimit int) *ProductHandler {
	return &ProductHandler{service: s, defaultLimit: defaultLimit}
}

// writeError maps the catalog error kinds onto HTTP statuses
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConstraintViolation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStorageFault):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func validationFailed(c *fiber.Ctx, errs []*validator.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errs,
	})
}

// Helper untuk parse UUID dari path
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateProduct
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	product, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProducts returns one page of products
// GET /api/v1/products?limit=10&offset=0
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.defaultLimit)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || offset < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "limit must be >= 1 and offset >= 0"})
	}

	products, err := h.service.FindPage(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// GetProduct resolves :term as an id, slug or title
// GET /api/v1/products/:term
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// UpdateProduct
// PATCH /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	product, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
