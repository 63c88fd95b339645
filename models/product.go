package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product source tags. Scraped products start life as SCRAPER and may be
// curated by an admin afterwards; manually created ones are MANUAL.
const (
	SourceScraper = "SCRAPER"
	SourceManual  = "MANUAL"
)

// Product is the catalog entity persisted through GORM.
//
// ExternalID carries the harvested ad link and is the preferred identity
// for reconciliation. Uniqueness is not enforced at the schema level; the
// importer approximates it with lookup-then-branch.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null;index" json:"title"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    *string         `json:"category"`
	Source      string          `gorm:"not null;default:MANUAL" json:"source"`
	ExternalID  *string         `gorm:"index" json:"externalId"`
	MainImage   *string         `json:"mainImage"`
	ImageURLs   []string        `gorm:"serializer:json" json:"imageUrls"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
