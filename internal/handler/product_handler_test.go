package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService records the last call and answers with canned values
type stubService struct {
	service.ProductService

	err        error
	lastTerm   string
	lastLimit  int
	lastOffset int
	lastID     uuid.UUID
	lastCreate *service.CreateProductRequest
	lastUpdate *service.UpdateProductRequest
}

func (s *stubService) Create(ctx context.Context, req *service.CreateProductRequest) (*model.ProductResponse, error) {
	s.lastCreate = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.ProductResponse{ID: uuid.NewString(), Title: req.Title, Slug: model.Slugify(req.Title), Images: req.Images}, nil
}

func (s *stubService) FindPage(ctx context.Context, limit, offset int) ([]model.ProductResponse, error) {
	s.lastLimit, s.lastOffset = limit, offset
	if s.err != nil {
		return nil, s.err
	}
	return []model.ProductResponse{{Title: "One", Images: []string{"a.jpg"}}}, nil
}

func (s *stubService) FindOnePlain(ctx context.Context, term string) (*model.ProductResponse, error) {
	s.lastTerm = term
	if s.err != nil {
		return nil, s.err
	}
	return &model.ProductResponse{Title: term, Images: []string{}}, nil
}

func (s *stubService) Update(ctx context.Context, id uuid.UUID, req *service.UpdateProductRequest) (*model.ProductResponse, error) {
	s.lastID, s.lastUpdate = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &model.ProductResponse{ID: id.String(), Images: req.Images}, nil
}

func (s *stubService) Remove(ctx context.Context, id uuid.UUID) error {
	s.lastID = id
	return s.err
}

func setup(stub *stubService) *fiber.App {
	app := fiber.New()
	h := NewProductHandler(stub, 10)
	app.Get("/products", h.GetProducts)
	app.Get("/products/:term", h.GetProduct)
	app.Post("/products", h.CreateProduct)
	app.Patch("/products/:id", h.UpdateProduct)
	app.Delete("/products/:id", h.DeleteProduct)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, string(raw)
}

const validBody = `{"title":"Pepe's Vans","price":120,"sizes":["9"],"gender":"unisex","images":["a.jpg"]}`

func TestCreateProduct(t *testing.T) {
	stub := &stubService{}
	status, body, _ := do(t, setup(stub), "POST", "/products", validBody)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pepes_vans", body["slug"])
	require.NotNil(t, stub.lastCreate)
	assert.Equal(t, []string{"a.jpg"}, stub.lastCreate.Images)
}

func TestCreateProductValidation(t *testing.T) {
	stub := &stubService{}
	status, body, _ := do(t, setup(stub), "POST", "/products", `{"title":"","price":-1,"sizes":[],"gender":"robot"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Nil(t, stub.lastCreate)
}

func TestCreateProductRejectsBlankTitleAndSlug(t *testing.T) {
	stub := &stubService{}
	app := setup(stub)

	bodies := []string{
		`{"title":"   ","price":1,"sizes":["M"],"gender":"men"}`,
		`{"title":"Shirt","slug":"  ' ","price":1,"sizes":["M"],"gender":"men"}`,
	}
	for _, b := range bodies {
		status, body, _ := do(t, app, "POST", "/products", b)
		assert.Equal(t, http.StatusBadRequest, status, b)
		assert.Equal(t, "Validation failed", body["error"], b)
	}
	assert.Nil(t, stub.lastCreate)

	status, _, _ := do(t, app, "PATCH", "/products/"+uuid.NewString(), `{"slug":"'"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateProductInvalidJSON(t *testing.T) {
	status, body, _ := do(t, setup(&stubService{}), "POST", "/products", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid JSON", body["error"])
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{name: "not found", err: &service.Error{Kind: service.ErrProductNotFound, Message: "Product with #x not found"}, want: 404, msg: "Product with #x not found"},
		{name: "duplicate", err: &service.Error{Kind: service.ErrConstraintViolation, Message: "Key (slug)=(x) already exists."}, want: 400, msg: "Key (slug)=(x) already exists."},
		{name: "storage", err: &service.Error{Kind: service.ErrStorageFault, Message: "unexpected error, check server logs"}, want: 500, msg: "unexpected error, check server logs"},
		{name: "unknown", err: errors.New("secret detail"), want: 500, msg: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := do(t, setup(&stubService{err: tt.err}), "POST", "/products", validBody)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestGetProductsPagination(t *testing.T) {
	stub := &stubService{}
	app := setup(stub)

	status, _, raw := do(t, app, "GET", "/products", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 10, stub.lastLimit)
	assert.Equal(t, 0, stub.lastOffset)
	assert.Contains(t, raw, `"images":["a.jpg"]`)

	status, _, _ = do(t, app, "GET", "/products?limit=5&offset=15", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 5, stub.lastLimit)
	assert.Equal(t, 15, stub.lastOffset)

	status, _, _ = do(t, app, "GET", "/products?limit=0", "")
	assert.Equal(t, 400, status)

	status, _, _ = do(t, app, "GET", "/products?offset=-1", "")
	assert.Equal(t, 400, status)
}

func TestGetProductPassesTerm(t *testing.T) {
	stub := &stubService{}
	status, body, _ := do(t, setup(stub), "GET", "/products/pepes_vans", "")

	assert.Equal(t, 200, status)
	assert.Equal(t, "pepes_vans", stub.lastTerm)
	assert.Equal(t, []any{}, body["images"])
}

func TestUpdateProduct(t *testing.T) {
	stub := &stubService{}
	app := setup(stub)
	id := uuid.New()

	status, body, _ := do(t, app, "PATCH", "/products/"+id.String(), `{"images":["b.jpg","c.jpg"]}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, id, stub.lastID)
	assert.Nil(t, stub.lastUpdate.Title)
	assert.Equal(t, []any{"b.jpg", "c.jpg"}, body["images"])

	status, _, _ = do(t, app, "PATCH", "/products/"+id.String(), `{"title":"X"}`)
	assert.Equal(t, 200, status)
	require.NotNil(t, stub.lastUpdate.Title)
	assert.Equal(t, "X", *stub.lastUpdate.Title)
	assert.Nil(t, stub.lastUpdate.Images, "omitted images must stay nil")

	status, _, _ = do(t, app, "PATCH", "/products/"+id.String(), `{"images":[]}`)
	assert.Equal(t, 200, status)
	assert.NotNil(t, stub.lastUpdate.Images, "explicit empty list must be kept")
	assert.Empty(t, stub.lastUpdate.Images)
}

func TestUpdateProductRejectsBadInput(t *testing.T) {
	app := setup(&stubService{})

	status, _, _ := do(t, app, "PATCH", "/products/not-a-uuid", `{}`)
	assert.Equal(t, 400, status)

	status, body, _ := do(t, app, "PATCH", "/products/"+uuid.NewString(), `{"gender":"robot"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestDeleteProduct(t *testing.T) {
	stub := &stubService{}
	id := uuid.New()

	status, _, _ := do(t, setup(stub), "DELETE", "/products/"+id.String(), "")
	assert.Equal(t, 200, status)
	assert.Equal(t, id, stub.lastID)

	stub.err = &service.Error{Kind: service.ErrProductNotFound, Message: "gone"}
	status, _, _ = do(t, setup(stub), "DELETE", "/products/"+id.String(), "")
	assert.Equal(t, 404, status)

	status, _, _ = do(t, setup(stub), "DELETE", "/products/abc", "")
	assert.Equal(t, 400, status)
}

type stubSeeder struct {
	n   int
	err error
}

func (s stubSeeder) Run(ctx context.Context) (int, error) { return s.n, s.err }

func TestRunSeed(t *testing.T) {
	app := fiber.New()
	app.Post("/seed", NewSeedHandler(stubSeeder{n: 6}).RunSeed)

	status, body, _ := do(t, app, "POST", "/seed", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(6), body["products"])

	app = fiber.New()
	app.Post("/seed", NewSeedHandler(stubSeeder{err: &service.Error{Kind: service.ErrStorageFault, Message: "unexpected error, check server logs"}}).RunSeed)
	status, _, _ = do(t, app, "POST", "/seed", "")
	assert.Equal(t, 500, status)
}
