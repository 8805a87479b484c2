package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/ws"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// memoryRepo mimics the PostgreSQL repository: unique slug index, cascade
// delete, serial image ids, and all-or-nothing updates.
type memoryRepo struct {
	mu          sync.Mutex
	order       []uuid.UUID
	products    map[uuid.UUID]model.Product
	images      map[uuid.UUID][]model.ProductImage
	nextImageID uint

	// failAfterImageDelete makes Update fail once the old images are gone
	failAfterImageDelete error
	// failAll makes every call fail with this error
	failAll error
	// lastColumns are the columns passed to the last Update
	lastColumns []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		products: map[uuid.UUID]model.Product{},
		images:   map[uuid.UUID][]model.ProductImage{},
	}
}

func uniqueViolation(slug string) error {
	return &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "idx_products_slug"`,
		Detail:  fmt.Sprintf("Key (slug)=(%s) already exists.", slug),
	}
}

func (r *memoryRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, p := range r.products {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *memoryRepo) insertImages(productID uuid.UUID, images []model.ProductImage) []model.ProductImage {
	out := make([]model.ProductImage, 0, len(images))
	for _, img := range images {
		r.nextImageID++
		img.ID = r.nextImageID
		img.ProductID = productID
		out = append(out, img)
	}
	return out
}

func (r *memoryRepo) Create(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if r.slugTaken(product.Slug, uuid.Nil) {
		return uniqueViolation(product.Slug)
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.Images = r.insertImages(product.ID, product.Images)

	stored := *product
	stored.Images = nil
	r.products[product.ID] = stored
	r.images[product.ID] = append([]model.ProductImage(nil), product.Images...)
	r.order = append(r.order, product.ID)
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memoryRepo) FindByTitleOrSlug(ctx context.Context, term string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, id := range r.order {
		p := r.products[id]
		if strings.EqualFold(p.Title, term) || p.Slug == strings.ToLower(term) {
			p.Images = append([]model.ProductImage{}, r.images[id]...)
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) FindPage(ctx context.Context, limit, offset int) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	var out []model.Product
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		p := r.products[r.order[i]]
		p.Images = append([]model.ProductImage{}, r.images[p.ID]...)
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) FindImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	return append([]model.ProductImage{}, r.images[productID]...), nil
}

func (r *memoryRepo) Update(ctx context.Context, product *model.Product, columns []string, images []model.ProductImage, replaceImages bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.lastColumns = append([]string(nil), columns...)

	// Work on copies and only publish them on success, like a transaction.
	workingImages := r.images[product.ID]
	if replaceImages {
		workingImages = nil
		if r.failAfterImageDelete != nil {
			return r.failAfterImageDelete
		}
	}
	stored, ok := r.products[product.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyColumns(&stored, product, columns)
	if r.slugTaken(stored.Slug, product.ID) {
		return uniqueViolation(stored.Slug)
	}
	if replaceImages {
		workingImages = r.insertImages(product.ID, images)
	}

	r.products[product.ID] = stored
	r.images[product.ID] = workingImages
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	delete(r.images, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.order = nil
	r.products = map[uuid.UUID]model.Product{}
	r.images = map[uuid.UUID][]model.ProductImage{}
	return nil
}

func (r *memoryRepo) imageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, imgs := range r.images {
		n += len(imgs)
	}
	return n
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (n *recordingNotifier) Publish(event ws.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Action)
	}
	return out
}

// applyColumns copies the named columns from src into dst
func applyColumns(dst, src *model.Product, columns []string) {
	for _, col := range columns {
		switch col {
		case "title":
			dst.Title = src.Title
		case "slug":
			dst.Slug = src.Slug
		case "price":
			dst.Price = src.Price
		case "description":
			dst.Description = src.Description
		case "stock":
			dst.Stock = src.Stock
		case "sizes":
			dst.Sizes = append([]string(nil), src.Sizes...)
		case "gender":
			dst.Gender = src.Gender
		case "tags":
			dst.Tags = append([]string(nil), src.Tags...)
		}
	}
}
