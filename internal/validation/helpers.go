package validation

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"product-management/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	skuPattern   = regexp.MustCompile(`^[A-Za-z0-9-]{5,20}$`)
	brandPattern = regexp.MustCompile(`^[\w\s\-.'0-9]+$`)

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	expensivePriceCutoff = decimal.NewFromInt(100)
)

// ContainsInappropriateWord reports whether text contains any banned word,
// matched as a case-insensitive substring.
func (k Keywords) ContainsInappropriateWord(text string) bool {
	return containsAny(text, k.Inappropriate)
}

// ContainsTechnologyKeyword reports whether text mentions at least one
// technology keyword.
func (k Keywords) ContainsTechnologyKeyword(text string) bool {
	return containsAny(text, k.Technology)
}

// IsHomeAppropriate reports whether text is free of home-banned words.
func (k Keywords) IsHomeAppropriate(text string) bool {
	return !containsAny(text, k.HomeInappropriate)
}

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// IsValidImageURL reports whether raw is an absolute http(s) URL ending in a
// recognized image extension.
func IsValidImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	lower := strings.ToLower(raw)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsValidSKU reports whether sku, after stripping internal spaces, is 5-20
// alphanumeric characters with hyphens.
func IsValidSKU(sku string) bool {
	return skuPattern.MatchString(strings.ReplaceAll(sku, " ", ""))
}

// IsValidBrandCharset reports whether brand contains only word characters,
// whitespace, hyphens, periods, apostrophes, and digits.
func IsValidBrandCharset(brand string) bool {
	return brandPattern.MatchString(brand)
}

// ExpensiveStockRule is the cross-field check applied to every request:
// expensive products (over $100) may not carry more than 20 units, and
// Electronics released more than five years before now fail outright.
// Both conditions must hold for the rule to pass.
func ExpensiveStockRule(price decimal.Decimal, stock int, category domain.ProductCategory, releaseDate, now time.Time) bool {
	if price.GreaterThan(expensivePriceCutoff) && stock > 20 {
		return false
	}
	if category == domain.CategoryElectronics && releaseDate.Before(now.AddDate(-5, 0, 0)) {
		return false
	}
	return true
}
