package domain

import (
	"math"
	"sort"
	"strings"
)

// Band is one of the three fixed party-size buckets a price sheet is keyed by.
type Band string

const (
	BandUpTo2 Band = "2"
	Band3To4  Band = "3-4"
	Band5Plus Band = "5<n"
)

// PriceSheet is the flat wire form of a tour's price table: keys are
// "<category>|<band>" composites (e.g. "4-stars|3-4"), values are per-person
// prices. Upstream payloads carry bookkeeping fields alongside the prices;
// those are not sheet entries and are filtered everywhere the sheet is read.
type PriceSheet map[string]float64

// sheetMetaKeys are known non-price fields that ride along in upstream payloads.
var sheetMetaKeys = map[string]bool{
	"id":         true,
	"tour_id":    true,
	"created_at": true,
	"updated_at": true,
}

// BandFor resolves a party size to its price band. The partition is closed:
// 2 belongs to "2" and 5 belongs to "5<n", never "3-4".
func BandFor(partySize int) Band {
	switch {
	case partySize <= 2:
		return BandUpTo2
	case partySize >= 5:
		return Band5Plus
	default:
		return Band3To4
	}
}

// SheetKey builds the composite lookup key for a category and band.
func SheetKey(category string, band Band) string {
	return category + "|" + string(band)
}

// BandPrice is one priced band within a category.
type BandPrice struct {
	Band  Band    `json:"band"`
	Price float64 `json:"price"`
}

// CategoryPrices groups the priced bands of one accommodation category.
type CategoryPrices struct {
	Category string      `json:"category"`
	Entries  []BandPrice `json:"entries"`
}

func bandRank(b Band) int {
	switch b {
	case BandUpTo2:
		return 0
	case Band3To4:
		return 1
	case Band5Plus:
		return 2
	default:
		return 3
	}
}

// Reshape turns a flat sheet into per-category band lists for rendering.
// Bookkeeping keys and keys without the "|" separator are dropped, not
// rejected; unknown upstream fields must never break a price table.
// A flat map carries no ordering, so categories come out sorted and bands
// in canonical order (2, 3-4, 5<n, then anything unknown).
func Reshape(sheet PriceSheet) []CategoryPrices {
	grouped := map[string][]BandPrice{}
	for key, price := range sheet {
		if sheetMetaKeys[key] {
			continue
		}
		category, band, ok := strings.Cut(key, "|")
		if !ok {
			continue
		}
		grouped[category] = append(grouped[category], BandPrice{Band: Band(band), Price: price})
	}

	out := make([]CategoryPrices, 0, len(grouped))
	for category, entries := range grouped {
		sort.Slice(entries, func(i, j int) bool {
			ri, rj := bandRank(entries[i].Band), bandRank(entries[j].Band)
			if ri != rj {
				return ri < rj
			}
			return entries[i].Band < entries[j].Band
		})
		out = append(out, CategoryPrices{Category: category, Entries: entries})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Categories lists the accommodation categories a sheet actually prices.
func (s PriceSheet) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for key := range s {
		if sheetMetaKeys[key] {
			continue
		}
		category, _, ok := strings.Cut(key, "|")
		if !ok || seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// HasCategory reports whether any band of the category is priced.
func (s PriceSheet) HasCategory(category string) bool {
	for key := range s {
		if sheetMetaKeys[key] {
			continue
		}
		c, _, ok := strings.Cut(key, "|")
		if ok && c == category {
			return true
		}
	}
	return false
}

// Quote is a computed price pair for one category + party size + discount.
// Nil prices mean "no price available for this combination", which is a
// valid state, not an error.
type Quote struct {
	BasePrice       *float64 `json:"basePrice"`
	DiscountedPrice *float64 `json:"discountedPrice"`
}

// Available reports whether the sheet priced the requested combination.
func (q Quote) Available() bool {
	return q.BasePrice != nil && q.DiscountedPrice != nil
}

// QuotePrice computes the per-group base and discounted totals. Pricing is
// strictly per person: base = partySize x sheet price for the resolved band.
// The discount percent is clamped into [0,100]; the discounted total is
// rounded to 2 decimals for display while the base stays exact so callers
// can show both. A party size below 1 yields no quote.
func QuotePrice(sheet PriceSheet, category string, partySize int, discountPercent float64) Quote {
	if partySize < 1 {
		return Quote{}
	}
	perPerson, ok := sheet[SheetKey(category, BandFor(partySize))]
	if !ok {
		return Quote{}
	}

	if discountPercent < 0 {
		discountPercent = 0
	} else if discountPercent > 100 {
		discountPercent = 100
	}

	base := float64(partySize) * perPerson
	discounted := roundCents(base * (1 - discountPercent/100))
	return Quote{BasePrice: &base, DiscountedPrice: &discounted}
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
