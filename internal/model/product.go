package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Gender values accepted for a product
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderKid    = "kid"
	GenderUnisex = "unisex"
)

type Product struct {
	BaseModel
	Title       string         `gorm:"type:text;not null" json:"title"`
	Slug        string         `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Price       float64        `gorm:"type:float;default:0" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Stock       int            `gorm:"default:0" json:"stock"`
	Sizes       pq.StringArray `gorm:"type:text[]" json:"sizes"`
	Gender      string         `gorm:"type:varchar(10);not null" json:"gender"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`

	// Relasi: images are owned rows, removed with the product
	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// ProductImage is a single image URL owned by a product.
// The serial ID keeps insertion order for display.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
}

// ProductResponse is the flattened shape handed to callers: images are plain URLs.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// ImageURLs returns the URLs of the loaded images in order. Never nil.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// ToResponse converts Product to ProductResponse using the loaded images
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Sizes:       nonNil(p.Sizes),
		Gender:      p.Gender,
		Tags:        nonNil(p.Tags),
		Images:      p.ImageURLs(),
	}
}

// NewImages builds one unsaved ProductImage per URL, preserving order.
func NewImages(urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for _, u := range urls {
		images = append(images, ProductImage{URL: u})
	}
	return images
}

// Slugify normalizes a title or slug: lower-cased, spaces to underscores, apostrophes dropped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
