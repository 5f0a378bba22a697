package models

type EngineType string

const (
	EngineAI    EngineType = "ai"
	EngineRules EngineType = "rules"
)

// Session is the persisted passport record. Recommendations are kept by product id only and
// re-joined against the catalog on retrieval.
type Session struct {
	ID                       string      `bson:"id" json:"id"`
	CreatedAt                string      `bson:"created_at" json:"created_at"`
	Survey                   SurveyInput `bson:"survey" json:"survey"`
	Vibe                     string      `bson:"vibe" json:"vibe"`
	Explanation              string      `bson:"explanation" json:"explanation"`
	Engine                   EngineType  `bson:"engine" json:"engine"`
	RecommendationProductIDs []string    `bson:"recommendation_product_ids" json:"recommendation_product_ids"`
}

type RecommendationResponse struct {
	SessionID       string               `json:"session_id"`
	Engine          EngineType           `json:"engine"`
	Vibe            string               `json:"vibe"`
	Explanation     string               `json:"explanation"`
	MoodboardImage  string               `json:"moodboard_image"`
	Recommendations []RecommendationItem `json:"recommendations"`
	CreatedAt       string               `json:"created_at"`
}

type PassportResponse struct {
	SessionID       string               `json:"session_id"`
	Engine          EngineType           `json:"engine"`
	Survey          SurveyInput          `json:"survey"`
	Vibe            string               `json:"vibe"`
	Explanation     string               `json:"explanation"`
	MoodboardImage  string               `json:"moodboard_image"`
	Recommendations []RecommendationItem `json:"recommendations"`
	CreatedAt       string               `json:"created_at"`
}

type VibeResponse struct {
	Vibe        string     `json:"vibe"`
	Explanation string     `json:"explanation"`
	Source      EngineType `json:"source"`
}
