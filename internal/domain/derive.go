package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var homeDiscount = decimal.NewFromFloat(0.9)

// EnrichedProduct is the creation/listing response view: all persisted fields
// plus display-only derived fields. For the Home category the price shown is
// discounted and the image URL is withheld; the stored product keeps its
// original values.
type EnrichedProduct struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Brand               string          `json:"brand"`
	SKU                 string          `json:"sku"`
	Category            ProductCategory `json:"category"`
	CategoryDisplayName string          `json:"category_display_name"`
	Price               decimal.Decimal `json:"price"`
	FormattedPrice      string          `json:"formatted_price"`
	ReleaseDate         time.Time       `json:"release_date"`
	ImageURL            string          `json:"image_url,omitempty"`
	IsAvailable         bool            `json:"is_available"`
	StockQuantity       int             `json:"stock_quantity"`
	CreatedAt           time.Time       `json:"created_at"`
	ProductAge          string          `json:"product_age"`
	BrandInitials       string          `json:"brand_initials"`
	AvailabilityStatus  string          `json:"availability_status"`
}

// Enrich computes the display view for a persisted product. It is pure:
// the result depends only on the product and the supplied clock reading, so
// enriching the same product twice yields identical output.
func Enrich(p *Product, now time.Time) EnrichedProduct {
	return EnrichedProduct{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Brand:               p.Brand,
		SKU:                 p.SKU,
		Category:            p.Category,
		CategoryDisplayName: p.Category.DisplayName(),
		Price:               effectivePrice(p),
		FormattedPrice:      FormatPrice(p.Price),
		ReleaseDate:         p.ReleaseDate,
		ImageURL:            effectiveImageURL(p),
		IsAvailable:         p.IsAvailable,
		StockQuantity:       p.StockQuantity,
		CreatedAt:           p.CreatedAt,
		ProductAge:          ProductAge(p.ReleaseDate, now),
		BrandInitials:       BrandInitials(p.Brand),
		AvailabilityStatus:  AvailabilityStatus(p),
	}
}

// effectivePrice applies the 10% Home discount to the view only.
func effectivePrice(p *Product) decimal.Decimal {
	if p.Category == CategoryHome {
		return p.Price.Mul(homeDiscount)
	}
	return p.Price
}

// effectiveImageURL withholds image URLs for Home products regardless of the
// stored value.
func effectiveImageURL(p *Product) string {
	if p.Category == CategoryHome {
		return ""
	}
	return p.ImageURL
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price as localized currency with two decimal places,
// e.g. "$1,299.99".
func FormatPrice(price decimal.Decimal) string {
	f, _ := price.Float64()
	return pricePrinter.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ProductAge buckets the time since release into a display label.
// Divisions truncate: 364 days is "12 months old", 1824 days is "4 years old".
func ProductAge(releaseDate, now time.Time) string {
	days := int(now.UTC().Sub(releaseDate).Hours() / 24)

	switch {
	case days < 30:
		return "New Release"
	case days < 365:
		return fmt.Sprintf("%d months old", days/30)
	case days < 1825:
		return fmt.Sprintf("%d years old", days/365)
	default:
		return "Classic"
	}
}

// BrandInitials derives initials from the brand name: first character of the
// first and last words, uppercased. A single word yields one initial; an
// empty or whitespace-only brand yields "?".
func BrandInitials(brand string) string {
	words := strings.Fields(brand)
	if len(words) == 0 {
		return "?"
	}

	first := []rune(words[0])
	if len(words) == 1 {
		return strings.ToUpper(string(first[0]))
	}

	last := []rune(words[len(words)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

// AvailabilityStatus maps availability and stock level to a display tier.
// The "Unavailable" branch only fires if stock is mutated to zero after
// creation while IsAvailable stays true; no such mutation path exists today.
func AvailabilityStatus(p *Product) string {
	switch {
	case !p.IsAvailable:
		return "Out of Stock"
	case p.StockQuantity == 0:
		return "Unavailable"
	case p.StockQuantity == 1:
		return "Last Item"
	case p.StockQuantity <= 5:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}
