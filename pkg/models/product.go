package models

// Product prices are stored in the canonical currency (USD). Display amounts are derived
// at response time with the configured conversion rate.
type Product struct {
	ID           string   `bson:"id" json:"id"`
	Handle       string   `bson:"handle,omitempty" json:"handle,omitempty"`
	Name         string   `bson:"name" json:"name" validate:"required"`
	Price        float64  `bson:"price" json:"price" validate:"gte=0"`
	ImageURL     string   `bson:"image_url" json:"image_url"`
	StyleTags    []string `bson:"style_tags" json:"style_tags"`
	OccasionTags []string `bson:"occasion_tags" json:"occasion_tags"`
	Description  *string  `bson:"description,omitempty" json:"description,omitempty"`
}

type RecommendationItem struct {
	Product Product `json:"product"`
	Reason  string  `json:"reason"`
}
