package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"jiji-catalog/models"
	"jiji-catalog/storage"
	"jiji-catalog/utils"
)

// priceCharsRegexp keeps only the characters that can take part in a price
// literal; currency symbols and free text are discarded, not validated.
var priceCharsRegexp = regexp.MustCompile(`[^\d.,]`)

// Importer reconciles the harvested ad log into the product store.
// Records are processed strictly sequentially: the match-or-create decision
// depends on read-then-write consistency per record.
type Importer struct {
	store   storage.ProductStore
	adsPath string
	logger  *utils.Logger
}

// NewImporter creates an Importer reading ads from adsPath.
func NewImporter(store storage.ProductStore, adsPath string, logger *utils.Logger) *Importer {
	return &Importer{store: store, adsPath: adsPath, logger: logger}
}

// ParsePrice turns raw scraped price text ("KSh 12,340") into a
// non-negative decimal. Anything that fails to parse becomes zero, so a
// bad scrape never poisons a stored price.
func ParsePrice(raw string) decimal.Decimal {
	numStr := priceCharsRegexp.ReplaceAllString(raw, "")
	numStr = strings.ReplaceAll(numStr, ",", "")
	if numStr == "" {
		return decimal.Zero
	}
	val, err := decimal.NewFromString(numStr)
	if err != nil || val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// Run reads the ad log and upserts every record, collecting per-record
// failures instead of aborting. A missing or unparseable ads file is fatal
// to the run: the summary carries a single error and zero processed records.
func (im *Importer) Run(ctx context.Context) *models.ImportSummary {
	summary := &models.ImportSummary{Errors: []models.ImportError{}}

	data, err := os.ReadFile(im.adsPath)
	if err != nil {
		summary.AddError(fmt.Sprintf("ads file not readable at %s: %v", im.adsPath, err), nil)
		return summary
	}

	var ads []*models.Ad
	if err := json.Unmarshal(data, &ads); err != nil {
		summary.AddError(fmt.Sprintf("failed to parse %s: %v", im.adsPath, err), nil)
		return summary
	}

	for _, ad := range ads {
		im.reconcile(ctx, ad, summary)
	}

	im.logger.Info("[import] Done. imported: %d, updated: %d, skipped: %d, ambiguous: %d, errors: %d",
		summary.Imported, summary.Updated, summary.Skipped, summary.Ambiguous, len(summary.Errors))
	return summary
}

func (im *Importer) reconcile(ctx context.Context, ad *models.Ad, summary *models.ImportSummary) {
	// A literal null in the ads array decodes to a nil record.
	if ad == nil {
		summary.AddError("null record in ads file", nil)
		return
	}

	title := strings.TrimSpace(ad.Title)
	if title == "" {
		summary.Skipped++
		return
	}

	link := strings.TrimSpace(ad.Link)
	price := ParsePrice(ad.Price)

	// Prefer the locally downloaded main image, fall back to the remote URL.
	var mainImage *string
	if ad.MainImageLocal != "" {
		mainImage = &ad.MainImageLocal
	} else if ad.MainImage != "" {
		mainImage = &ad.MainImage
	}

	existing, candidates, err := im.resolve(ctx, link, title)
	if err != nil {
		summary.AddError(err.Error(), ad)
		return
	}
	if candidates > 1 {
		im.logger.Warn("[import] %q matches %d products by title, leaving all untouched", title, candidates)
		summary.Ambiguous++
		return
	}

	if existing == nil {
		p := &models.Product{
			Title:       title,
			Description: optional(ad.Description),
			Price:       price,
			Stock:       0, // left for admin curation
			Source:      models.SourceScraper,
			ExternalID:  optional(link),
			MainImage:   mainImage,
			ImageURLs:   append([]string(nil), ad.OtherImages...),
		}
		if err := im.store.Create(ctx, p); err != nil {
			summary.AddError(err.Error(), ad)
			return
		}
		summary.Imported++
		return
	}

	// Conservative merge: never shrink the image set, never clobber a real
	// price with a parse-failure zero, never touch stock or category.
	if ad.Description != "" {
		existing.Description = optional(ad.Description)
	}
	if !price.IsZero() {
		existing.Price = price
	}
	if mainImage != nil {
		existing.MainImage = mainImage
	}
	existing.ImageURLs = unionStrings(existing.ImageURLs, ad.OtherImages)
	if link != "" {
		existing.ExternalID = &link
	}
	existing.Source = models.SourceScraper

	if err := im.store.Save(ctx, existing); err != nil {
		summary.AddError(err.Error(), ad)
		return
	}
	summary.Updated++
}

// resolve applies the two-tier identity match: external link first, then
// exact title. It returns the matched product, or the number of title
// candidates when the fallback is ambiguous.
func (im *Importer) resolve(ctx context.Context, link, title string) (*models.Product, int, error) {
	if link != "" {
		p, err := im.store.FindByExternalID(ctx, link)
		if err != nil {
			return nil, 0, err
		}
		if p != nil {
			return p, 1, nil
		}
	}

	matches, err := im.store.FindByTitle(ctx, title)
	if err != nil {
		return nil, 0, err
	}
	switch len(matches) {
	case 0:
		return nil, 0, nil
	case 1:
		return matches[0], 1, nil
	default:
		return nil, len(matches), nil
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// unionStrings merges extra into existing, preserving first-seen order.
func unionStrings(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, lists := range [][]string{existing, extra} {
		for _, s := range lists {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
