package repository

import (
	"context"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByTitleOrSlug(ctx context.Context, term string) (*model.Product, error)
	FindPage(ctx context.Context, limit, offset int) ([]model.Product, error)
	FindImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	Update(ctx context.Context, product *model.Product, columns []string, images []model.ProductImage, replaceImages bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// orderedImages keeps images in insertion order when preloading
func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.id ASC")
}

// Create inserts the product and its images in one statement batch
func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID looks a product up by primary key without loading images
func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Take(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByTitleOrSlug matches the title case-insensitively or the slug lower-cased,
// and joins the images.
func (r *productRepo) FindByTitleOrSlug(ctx context.Context, term string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("UPPER(title) = UPPER(?) OR slug = LOWER(?)", term, term).
		Take(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindPage returns products in storage order, sliced by offset/limit
func (r *productRepo) FindPage(ctx context.Context, limit, offset int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

// FindImages returns the images owned by productID in insertion order
func (r *productRepo) FindImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&images).Error
	return images, err
}

// Update writes the given columns of product, plus updated_at, so concurrent
// patches of other columns are not overwritten. When replaceImages is set the
// owned images are deleted and images inserted in their place. Everything runs
// in one transaction, so a failure at any step leaves the previous state intact.
func (r *productRepo) Update(ctx context.Context, product *model.Product, columns []string, images []model.ProductImage, replaceImages bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceImages {
			if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductImage{}).Error; err != nil {
				return err
			}
		}

		res := tx.Model(product).
			Select(append([]string{"updated_at"}, columns...)).
			Updates(product)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if replaceImages && len(images) > 0 {
			for i := range images {
				images[i].ProductID = product.ID
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
			product.Images = images
		}
		return nil
	})
}

// Delete removes the product; the foreign key cascades to its images
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll wipes the catalog in one statement
func (r *productRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Product{}).Error
}
