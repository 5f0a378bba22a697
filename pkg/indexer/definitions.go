package indexer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evol-jewels-io/stylist/internal/common"
)

// StylistIndexes are the indexes the API expects on its collections.
func StylistIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: common.ProductCollection,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetName("products_id_unique").SetUnique(true),
			},
		},
		{
			Collection: common.ProductCollection,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "handle", Value: 1}},
				Options: options.Index().SetName("products_handle"),
			},
		},
		{
			Collection: common.SessionCollection,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetName("sessions_id_unique").SetUnique(true),
			},
		},
		{
			Collection: common.SessionCollection,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("sessions_created_at_desc"),
			},
		},
	}
}

const LowercaseTagsVersion = "20240901_lowercase_product_tags"

// lowerTags is an update-pipeline expression mapping field's array to lowercase strings.
func lowerTags(field string) bson.D {
	return bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, bson.A{}}}}},
		{Key: "as", Value: "t"},
		{Key: "in", Value: bson.D{{Key: "$toLower", Value: "$$t"}}},
	}}}
}

// StylistMigrations lists the data migrations in version order.
func StylistMigrations() []Migration {
	return []Migration{
		{
			Version:     LowercaseTagsVersion,
			Description: "normalise product style and occasion tags to lowercase",
			Up: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(common.ProductCollection).UpdateMany(ctx, bson.M{}, mongo.Pipeline{
					{{Key: "$set", Value: bson.D{
						{Key: "style_tags", Value: lowerTags("style_tags")},
						{Key: "occasion_tags", Value: lowerTags("occasion_tags")},
					}}},
				})
				return err
			},
		},
	}
}
