package domain

import "testing"

func sampleSheet() PriceSheet {
	return PriceSheet{
		"3-stars|2":   100,
		"3-stars|3-4": 90,
		"3-stars|5<n": 80,
	}
}

func TestBandForPartition(t *testing.T) {
	cases := []struct {
		partySize int
		want      Band
	}{
		{1, BandUpTo2},
		{2, BandUpTo2},
		{3, Band3To4},
		{4, Band3To4},
		{5, Band5Plus},
		{6, Band5Plus},
		{12, Band5Plus},
	}
	for _, tc := range cases {
		if got := BandFor(tc.partySize); got != tc.want {
			t.Fatalf("BandFor(%d) = %q, want %q", tc.partySize, got, tc.want)
		}
	}
}

func TestQuotePriceCouple(t *testing.T) {
	q := QuotePrice(sampleSheet(), "3-stars", 2, 0)
	if !q.Available() {
		t.Fatalf("expected quote to be available")
	}
	if *q.BasePrice != 200 {
		t.Fatalf("base = %v, want 200", *q.BasePrice)
	}
	if *q.DiscountedPrice != 200 {
		t.Fatalf("zero discount must be a no-op, got %v", *q.DiscountedPrice)
	}
}

func TestQuotePriceMidBandWithDiscount(t *testing.T) {
	q := QuotePrice(sampleSheet(), "3-stars", 4, 10)
	if !q.Available() {
		t.Fatalf("expected quote to be available")
	}
	if *q.BasePrice != 360 {
		t.Fatalf("base = %v, want 360", *q.BasePrice)
	}
	if *q.DiscountedPrice != 324.00 {
		t.Fatalf("discounted = %v, want 324.00", *q.DiscountedPrice)
	}
}

func TestQuotePriceLargeGroup(t *testing.T) {
	q := QuotePrice(sampleSheet(), "3-stars", 6, 0)
	if !q.Available() {
		t.Fatalf("expected quote to be available")
	}
	if *q.BasePrice != 480 {
		t.Fatalf("base = %v, want 480", *q.BasePrice)
	}
}

func TestQuotePriceFullDiscount(t *testing.T) {
	q := QuotePrice(sampleSheet(), "3-stars", 3, 100)
	if !q.Available() {
		t.Fatalf("expected quote to be available")
	}
	if *q.DiscountedPrice != 0 {
		t.Fatalf("100%% discount must zero the total, got %v", *q.DiscountedPrice)
	}
	if *q.BasePrice != 270 {
		t.Fatalf("base must survive the discount, got %v", *q.BasePrice)
	}
}

func TestQuotePriceRounding(t *testing.T) {
	sheet := PriceSheet{"4-stars|2": 99.99}
	q := QuotePrice(sheet, "4-stars", 2, 33)
	// 199.98 * 0.67 = 133.9866 -> 133.99
	if *q.DiscountedPrice != 133.99 {
		t.Fatalf("discounted = %v, want 133.99", *q.DiscountedPrice)
	}
}

func TestQuotePriceClampsDiscount(t *testing.T) {
	q := QuotePrice(sampleSheet(), "3-stars", 2, 150)
	if *q.DiscountedPrice != 0 {
		t.Fatalf("discount above 100 must clamp to 100, got %v", *q.DiscountedPrice)
	}
	q = QuotePrice(sampleSheet(), "3-stars", 2, -5)
	if *q.DiscountedPrice != 200 {
		t.Fatalf("negative discount must clamp to 0, got %v", *q.DiscountedPrice)
	}
}

func TestQuotePriceMissingEntry(t *testing.T) {
	sheet := PriceSheet{"3-stars|2": 100}
	q := QuotePrice(sheet, "3-stars", 4, 0)
	if q.Available() {
		t.Fatalf("missing band must yield no quote, got %+v", q)
	}
	q = QuotePrice(sheet, "5-stars", 2, 0)
	if q.Available() {
		t.Fatalf("unknown category must yield no quote, got %+v", q)
	}
}

func TestQuotePriceInvalidPartySize(t *testing.T) {
	for _, n := range []int{0, -1} {
		if q := QuotePrice(sampleSheet(), "3-stars", n, 0); q.Available() {
			t.Fatalf("party size %d must yield no quote", n)
		}
	}
}

func TestQuotePriceIdempotent(t *testing.T) {
	sheet := sampleSheet()
	a := QuotePrice(sheet, "3-stars", 4, 12.5)
	b := QuotePrice(sheet, "3-stars", 4, 12.5)
	if *a.BasePrice != *b.BasePrice || *a.DiscountedPrice != *b.DiscountedPrice {
		t.Fatalf("identical inputs produced different quotes: %+v vs %+v", a, b)
	}
}

func TestReshapeDropsBookkeepingKeys(t *testing.T) {
	sheet := PriceSheet{
		"id":          7,
		"tour_id":     12,
		"created_at":  0,
		"updated_at":  0,
		"3-stars|2":   100,
		"4-stars|3-4": 150,
	}
	groups := Reshape(sheet)
	if len(groups) != 2 {
		t.Fatalf("expected 2 categories, got %d (%+v)", len(groups), groups)
	}
	if groups[0].Category != "3-stars" || groups[1].Category != "4-stars" {
		t.Fatalf("unexpected categories: %+v", groups)
	}
}

func TestReshapeIgnoresMalformedKeys(t *testing.T) {
	sheet := PriceSheet{
		"garbage":     1,
		"3-stars|2":   100,
		"3-stars|3-4": 90,
		"3-stars|5<n": 80,
	}
	groups := Reshape(sheet)
	if len(groups) != 1 {
		t.Fatalf("expected 1 category, got %d", len(groups))
	}
	entries := groups[0].Entries
	if len(entries) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(entries))
	}
	// canonical band order
	if entries[0].Band != BandUpTo2 || entries[1].Band != Band3To4 || entries[2].Band != Band5Plus {
		t.Fatalf("bands out of canonical order: %+v", entries)
	}
}

func TestSheetCategories(t *testing.T) {
	sheet := PriceSheet{
		"id":          3,
		"4-stars|2":   200,
		"4-stars|3-4": 180,
		"3-stars|2":   100,
	}
	cats := sheet.Categories()
	if len(cats) != 2 || cats[0] != "3-stars" || cats[1] != "4-stars" {
		t.Fatalf("unexpected categories: %v", cats)
	}
	if !sheet.HasCategory("4-stars") {
		t.Fatalf("HasCategory(4-stars) = false")
	}
	if sheet.HasCategory("5-stars") {
		t.Fatalf("HasCategory(5-stars) = true")
	}
}
