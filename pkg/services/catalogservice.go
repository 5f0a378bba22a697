package services

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evol-jewels-io/stylist/internal"
	"evol-jewels-io/stylist/internal/common"
	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
)

// CatalogServiceImpl implements the CatalogService interface. Reads go through an in-process
// snapshot, then redis, then mongo.
type CatalogServiceImpl struct {
	productCollection *mongo.Collection
	rdb               *redis.Client
	ttl               time.Duration

	mu      sync.RWMutex
	local   []models.Product
	localAt time.Time
}

// NewCatalogService creates a new instance of CatalogService. rdb may be nil.
func NewCatalogService(db *mongo.Database, rdb *redis.Client, ttl time.Duration) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		productCollection: db.Collection(common.ProductCollection),
		rdb:               rdb,
		ttl:               ttl,
	}
}

// ListProducts returns every product, unfiltered. An empty catalog is an empty slice.
func (cs *CatalogServiceImpl) ListProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := cs.snapshot(); ok {
		return products, nil
	}

	if products, ok := cs.readCache(ctx); ok {
		cs.setSnapshot(products)
		return products, nil
	}

	products, err := cs.find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	cs.writeCache(ctx, products)
	cs.setSnapshot(products)
	return products, nil
}

// FindProductsByIDs returns the products whose id is in ids, in store order. Unknown ids are skipped.
func (cs *CatalogServiceImpl) FindProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	products, err := cs.find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find products by id")
	}
	return products, nil
}

func (cs *CatalogServiceImpl) InsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}
	if _, err := cs.productCollection.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "insert products")
	}
	cs.invalidate(ctx)
	return nil
}

// ReplaceProducts swaps the whole catalog for products.
func (cs *CatalogServiceImpl) ReplaceProducts(ctx context.Context, products []models.Product) error {
	if _, err := cs.productCollection.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "clear products")
	}
	if len(products) == 0 {
		cs.invalidate(ctx)
		return nil
	}
	return cs.InsertProducts(ctx, products)
}

func (cs *CatalogServiceImpl) CountProducts(ctx context.Context) (int64, error) {
	count, err := cs.productCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

func (cs *CatalogServiceImpl) InvalidateLocal() {
	cs.mu.Lock()
	cs.local = nil
	cs.localAt = time.Time{}
	cs.mu.Unlock()
}

func (cs *CatalogServiceImpl) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := cs.productCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (cs *CatalogServiceImpl) invalidate(ctx context.Context) {
	cs.InvalidateLocal()
	if cs.rdb == nil {
		return
	}
	if err := cs.rdb.Del(ctx, common.CatalogCacheKey).Err(); err != nil {
		util.LogError("failed to drop catalog cache", err)
	}
	_ = internal.PublishCacheMessage(ctx, cs.rdb, internal.CacheInvalidateCatalog, common.CatalogCacheKey)
}

func (cs *CatalogServiceImpl) snapshot() ([]models.Product, bool) {
	if cs.ttl <= 0 {
		return nil, false
	}
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.local == nil || time.Since(cs.localAt) > cs.ttl {
		return nil, false
	}
	return cs.local, true
}

func (cs *CatalogServiceImpl) setSnapshot(products []models.Product) {
	if cs.ttl <= 0 {
		return
	}
	cs.mu.Lock()
	cs.local = products
	cs.localAt = time.Now()
	cs.mu.Unlock()
}

func (cs *CatalogServiceImpl) readCache(ctx context.Context) ([]models.Product, bool) {
	if cs.rdb == nil || cs.ttl <= 0 {
		return nil, false
	}
	raw, err := cs.rdb.Get(ctx, common.CatalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			util.LogError("failed to read catalog cache", err)
		}
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		util.LogError("failed to decode catalog cache", err)
		return nil, false
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, true
}

func (cs *CatalogServiceImpl) writeCache(ctx context.Context, products []models.Product) {
	if cs.rdb == nil || cs.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		util.LogError("failed to encode catalog cache", err)
		return
	}
	if err := cs.rdb.Set(ctx, common.CatalogCacheKey, raw, cs.ttl).Err(); err != nil {
		util.LogError("failed to write catalog cache", err)
	}
}
