package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
	"evol-jewels-io/stylist/pkg/vibe"
)

type sampleProduct struct {
	name        string
	price       float64
	style       []string
	occasion    []string
	description string
	vibe        string
}

var sampleProducts = []sampleProduct{
	{"Glam Diamond Studs", 950, []string{"bold", "glam"}, []string{"red carpet", "wedding"}, "Brilliant-cut diamond studs with a red carpet polish.", vibe.HollywoodGlam},
	{"Minimal Gold Bar Necklace", 180, []string{"minimal", "modern"}, []string{"everyday", "office"}, "Sleek gold bar pendant for an effortless modern look.", vibe.MinimalModern},
	{"Pearl Bridal Choker", 520, []string{"bridal", "classic"}, []string{"wedding"}, "Elegant pearl choker perfect for bridal grace.", vibe.BridalGrace},
	{"Everyday Gold Hoops", 95, []string{"chic", "casual"}, []string{"everyday"}, "Lightweight hoops for daily wear.", vibe.EverydayChic},
	{"Vintage Heart Locket", 260, []string{"vintage", "romance"}, []string{"date night", "anniversary"}, "Engraved locket with nostalgic charm.", vibe.VintageRomance},
	{"Editorial Chain Collar", 420, []string{"editorial", "bold"}, []string{"event", "runway"}, "Chunky collar with magazine-worthy presence.", vibe.EditorialChic},
	{"Boho Coin Necklace", 140, []string{"boho", "luxe"}, []string{"festival", "vacation"}, "Layered coins for relaxed luxe.", vibe.BohoLuxe},
	{"Sculptural Cuff Bracelet", 310, []string{"bold", "sculptural"}, []string{"event", "party"}, "Architectural cuff that turns heads.", vibe.BoldStatement},
}

// SampleCatalog builds the demo catalog: each sample product followed by one priced variant per sample.
func SampleCatalog(table *vibe.Table) []models.Product {
	products := make([]models.Product, 0, len(sampleProducts)*2)
	for _, sp := range sampleProducts {
		products = append(products, sp.product(table, sp.name, sp.price))
	}
	for i, sp := range sampleProducts {
		price := math.Round(sp.price*(0.8+0.05*float64(i))*100) / 100
		products = append(products, sp.product(table, fmt.Sprintf("%s Variant %d", sp.name, i+1), price))
	}
	return products
}

func (sp sampleProduct) product(table *vibe.Table, name string, price float64) models.Product {
	desc := sp.description
	return models.Product{
		ID:           uuid.NewString(),
		Handle:       slug.Make(name),
		Name:         name,
		Price:        price,
		ImageURL:     table.Image(sp.vibe),
		StyleTags:    append([]string(nil), sp.style...),
		OccasionTags: append([]string(nil), sp.occasion...),
		Description:  &desc,
	}
}

// DuplicateHandles returns handles shared by more than one product, in first-seen order.
func DuplicateHandles(products []models.Product) []string {
	counts := make(map[string]int, len(products))
	var dups []string
	for _, p := range products {
		h := p.Handle
		if h == "" {
			h = slug.Make(p.Name)
		}
		counts[h]++
		if counts[h] == 2 {
			dups = append(dups, h)
		}
	}
	return dups
}

// SeedProductsIfNeeded inserts the sample catalog into an empty store. It reports whether it seeded.
func SeedProductsIfNeeded(ctx context.Context, catalog CatalogService, table *vibe.Table) (bool, error) {
	count, err := catalog.CountProducts(ctx)
	if err != nil {
		return false, errors.Wrap(err, "seed catalog")
	}
	if count > 0 {
		return false, nil
	}

	products := SampleCatalog(table)
	for _, h := range DuplicateHandles(products) {
		util.Logger().Warn().Str("handle", h).Msg("duplicate product handle in catalog")
	}
	if err := catalog.InsertProducts(ctx, products); err != nil {
		return false, errors.Wrap(err, "seed catalog")
	}

	util.Logger().Info().Int("products", len(products)).Msg("seeded sample catalog")
	return true, nil
}
