package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/telemetry"
	"go-catalog-ws/internal/ws"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ProductService interface {
	Create(ctx context.Context, req *CreateProductRequest) (*model.ProductResponse, error)
	FindPage(ctx context.Context, limit, offset int) ([]model.ProductResponse, error)
	FindByTerm(ctx context.Context, term string) (*model.Product, error)
	FindOnePlain(ctx context.Context, term string) (*model.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*model.ProductResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
	PurgeAll(ctx context.Context) error
}

// Notifier receives catalog change events
type Notifier interface {
	Publish(event ws.Event)
}

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Slug        string   `json:"slug" validate:"omitempty,slug"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" validate:"required,min=1,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"dive,required"`
	Images      []string `json:"images" validate:"dive,required"`
}

// UpdateProductRequest is a partial update: nil fields are left unchanged.
// A nil Images leaves the image set untouched; a non-nil one (even empty)
// replaces it. Sizes can be changed but never emptied.
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitnil,notblank"`
	Slug        *string  `json:"slug" validate:"omitnil,slug"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock" validate:"omitnil,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,min=1,dive,required"`
	Gender      *string  `json:"gender" validate:"omitnil,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

type productService struct {
	repo     repository.ProductRepository
	notifier Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *telemetry.Metrics
}

func NewProductService(repo repository.ProductRepository, notifier Notifier, logger *slog.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) ProductService {
	return &productService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// start opens a span for operation; the returned func ends it and records the outcome
func (s *productService) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "ProductService."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, resultLabel(err))
		}
		s.metrics.Observe(operation, resultLabel(err), started)
		span.End()
	}
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest) (_ *model.ProductResponse, err error) {
	ctx, finish := s.start(ctx, "create", attribute.String("product.title", req.Title))
	defer func() { finish(err) }()

	slug := req.Slug
	if slug == "" {
		slug = req.Title
	}
	slug = model.Slugify(slug)
	if slug == "" {
		return nil, errEmptySlug
	}

	product := &model.Product{
		Title:       req.Title,
		Slug:        slug,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      req.Gender,
		Tags:        req.Tags,
		Images:      model.NewImages(req.Images),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.mapStorageError(ctx, "create", err)
	}

	// Callers get back the URLs they sent, not a re-read of the relation
	resp := product.ToResponse()
	resp.Images = append([]string{}, req.Images...)

	s.logger.InfoContext(ctx, "Product created",
		slog.String("product_id", resp.ID),
		slog.String("slug", resp.Slug),
	)
	s.notifier.Publish(ws.Event{
		Action:    ws.ActionProductCreated,
		ProductID: resp.ID,
		Product:   resp,
		Message:   fmt.Sprintf("product '%s' created", resp.Title),
	})
	return &resp, nil
}

func (s *productService) FindPage(ctx context.Context, limit, offset int) (_ []model.ProductResponse, err error) {
	ctx, finish := s.start(ctx, "list", attribute.Int("page.limit", limit), attribute.Int("page.offset", offset))
	defer func() { finish(err) }()

	products, err := s.repo.FindPage(ctx, limit, offset)
	if err != nil {
		return nil, s.mapStorageError(ctx, "list", err)
	}

	out := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out, nil
}

// FindByTerm resolves term as an id when it parses as a UUID (images are not
// loaded on that path), otherwise as a title or slug with images joined.
func (s *productService) FindByTerm(ctx context.Context, term string) (_ *model.Product, err error) {
	ctx, finish := s.start(ctx, "find", attribute.String("product.term", term))
	defer func() { finish(err) }()

	product, _, err := s.findByTerm(ctx, term)
	return product, err
}

// findByTerm also reports whether the images were joined
func (s *productService) findByTerm(ctx context.Context, term string) (*model.Product, bool, error) {
	var (
		product      *model.Product
		imagesLoaded bool
		err          error
	)
	if id, ok := parseID(term); ok {
		product, err = s.repo.FindByID(ctx, id)
	} else {
		product, err = s.repo.FindByTitleOrSlug(ctx, term)
		imagesLoaded = true
	}
	if err != nil {
		return nil, false, s.mapLookupError(ctx, "find", fmt.Sprintf("Product with #%s not found", term), err)
	}
	return product, imagesLoaded, nil
}

func (s *productService) FindOnePlain(ctx context.Context, term string) (_ *model.ProductResponse, err error) {
	ctx, finish := s.start(ctx, "find_plain", attribute.String("product.term", term))
	defer func() { finish(err) }()

	return s.findOnePlain(ctx, term)
}

// parseID accepts only the canonical 8-4-4-4-12 form, so braced, urn and
// undashed spellings are looked up as titles or slugs.
func parseID(term string) (uuid.UUID, bool) {
	if len(term) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(term)
	return id, err == nil
}

// findOnePlain flattens the product found for term. The id path does not join
// images, so they are fetched separately there.
func (s *productService) findOnePlain(ctx context.Context, term string) (*model.ProductResponse, error) {
	product, imagesLoaded, err := s.findByTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	if !imagesLoaded {
		images, err := s.repo.FindImages(ctx, product.ID)
		if err != nil {
			return nil, s.mapLookupError(ctx, "find", fmt.Sprintf("Product with #%s not found", term), err)
		}
		product.Images = images
	}
	resp := product.ToResponse()
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (_ *model.ProductResponse, err error) {
	ctx, finish := s.start(ctx, "update", attribute.String("product.id", id.String()))
	defer func() { finish(err) }()

	notFoundMsg := fmt.Sprintf("Product with #%s not found", id)

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(ctx, "update", notFoundMsg, err)
	}

	patched, columns := applyPatch(*current, req)
	if patched.Slug == "" {
		return nil, errEmptySlug
	}

	replaceImages := req.Images != nil
	var images []model.ProductImage
	if replaceImages {
		images = model.NewImages(req.Images)
	}

	if err := s.repo.Update(ctx, &patched, columns, images, replaceImages); err != nil {
		return nil, s.mapLookupError(ctx, "update", notFoundMsg, err)
	}

	// Re-read so the caller sees the committed state
	updated, err := s.findOnePlain(ctx, id.String())
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ws.Event{
		Action:    ws.ActionProductUpdated,
		ProductID: updated.ID,
		Product:   updated,
		Message:   fmt.Sprintf("product '%s' updated", updated.Title),
	})
	return updated, nil
}

// applyPatch returns a new product value with the non-nil fields of req applied,
// and the columns they map to. The slug is normalized when given explicitly and
// re-derived from the title when only the title changes.
func applyPatch(current model.Product, req *UpdateProductRequest) (model.Product, []string) {
	next := current
	next.Images = nil
	next.Sizes = append([]string(nil), current.Sizes...)
	next.Tags = append([]string(nil), current.Tags...)

	var columns []string
	if req.Title != nil {
		next.Title = *req.Title
		columns = append(columns, "title")
	}
	switch {
	case req.Slug != nil:
		next.Slug = model.Slugify(*req.Slug)
		columns = append(columns, "slug")
	case req.Title != nil && *req.Title != current.Title:
		next.Slug = model.Slugify(*req.Title)
		columns = append(columns, "slug")
	}
	if req.Price != nil {
		next.Price = *req.Price
		columns = append(columns, "price")
	}
	if req.Description != nil {
		next.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.Stock != nil {
		next.Stock = *req.Stock
		columns = append(columns, "stock")
	}
	if len(req.Sizes) > 0 {
		next.Sizes = append([]string(nil), req.Sizes...)
		columns = append(columns, "sizes")
	}
	if req.Gender != nil {
		next.Gender = *req.Gender
		columns = append(columns, "gender")
	}
	if req.Tags != nil {
		next.Tags = append([]string(nil), req.Tags...)
		columns = append(columns, "tags")
	}
	return next, columns
}

// Remove resolves id the same way FindByTerm does, then deletes the product
// and, through the foreign key, its images.
func (s *productService) Remove(ctx context.Context, id uuid.UUID) (err error) {
	ctx, finish := s.start(ctx, "remove", attribute.String("product.id", id.String()))
	defer func() { finish(err) }()

	product, _, err := s.findByTerm(ctx, id.String())
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return s.mapLookupError(ctx, "remove", fmt.Sprintf("Product with #%s not found", id), err)
	}

	s.notifier.Publish(ws.Event{
		Action:    ws.ActionProductDeleted,
		ProductID: product.ID.String(),
		Message:   fmt.Sprintf("product '%s' deleted", product.Title),
	})
	return nil
}

func (s *productService) PurgeAll(ctx context.Context) (err error) {
	ctx, finish := s.start(ctx, "purge")
	defer func() { finish(err) }()

	if err := s.repo.DeleteAll(ctx); err != nil {
		return s.mapStorageError(ctx, "purge", err)
	}

	s.logger.WarnContext(ctx, "Catalog purged")
	s.notifier.Publish(ws.Event{
		Action:  ws.ActionCatalogPurged,
		Message: "catalog purged",
	})
	return nil
}
