package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoProduct struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Name          string                `bson:"name"`
	Slug          string                `bson:"slug"`
	Description   string                `bson:"description"`
	Price         float64               `bson:"price"`
	OriginalPrice float64               `bson:"originalPrice,omitempty"`
	Category      *primitive.ObjectID   `bson:"category"`
	Images        []string              `bson:"images"`
	Quantity      int                   `bson:"quantity"`
	StockStatus   string                `bson:"stockStatus"`
	ColorVariants []domain.ColorVariant `bson:"colorVariants"`
	SizeVariants  []domain.SizeVariant  `bson:"sizeVariants"`
	Weight        string                `bson:"weight,omitempty"`
	DeliveryTime  int                   `bson:"deliveryTime,omitempty"`
	SKU           string                `bson:"sku,omitempty"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

// mongoProductSummary is the listing projection with the category joined in.
type mongoProductSummary struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Price       float64            `bson:"price"`
	Images      []string           `bson:"images"`
	StockStatus string             `bson:"stockStatus"`
	CategoryDoc []mongoRef         `bson:"categoryDoc"`
}

func toMongoProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      optionalObjectID(p.CategoryID),
		Images:        nonNil(p.Images),
		Quantity:      p.Quantity,
		StockStatus:   string(p.StockStatus),
		ColorVariants: p.ColorVariants,
		SizeVariants:  p.SizeVariants,
		Weight:        p.Weight,
		DeliveryTime:  p.DeliveryTime,
		SKU:           p.SKU,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *mongoProduct) toDomain() *domain.Product {
	colors := m.ColorVariants
	if colors == nil {
		colors = []domain.ColorVariant{}
	}
	sizes := m.SizeVariants
	if sizes == nil {
		sizes = []domain.SizeVariant{}
	}
	stock := domain.StockStatus(m.StockStatus)
	if stock == "" {
		stock = domain.StockInStock
	}
	return &domain.Product{
		ID:            m.ID.Hex(),
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		CategoryID:    hexOrEmpty(m.Category),
		Images:        nonNil(m.Images),
		Quantity:      m.Quantity,
		StockStatus:   stock,
		ColorVariants: colors,
		SizeVariants:  sizes,
		Weight:        m.Weight,
		DeliveryTime:  m.DeliveryTime,
		SKU:           m.SKU,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (m *mongoProductSummary) toDomain() domain.ProductSummary {
	s := domain.ProductSummary{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Slug:        m.Slug,
		Price:       m.Price,
		Images:      nonNil(m.Images),
		StockStatus: domain.StockStatus(m.StockStatus),
	}
	if len(m.CategoryDoc) > 0 {
		s.Category = &domain.CategoryRef{ID: m.CategoryDoc[0].ID.Hex(), Name: m.CategoryDoc[0].Name}
	}
	return s
}

// List returns summaries newest first. Search is a case-insensitive literal
// substring match on the name.
func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]domain.ProductSummary, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if f.Search != "" {
		match["name"] = containsInsensitive(f.Search)
	}

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	items, err := r.summaries(ctx, match, f.Skip, f.Limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches the query against name or description.
func (r *ProductRepository) Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := containsInsensitive(query)
	match := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
	return r.summaries(ctx, match, 0, limit)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProduct(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("product %q: %w", p.Slug, domain.ErrSlugTaken)
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces every mutable field of the product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(p.ID, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	doc := toMongoProduct(p)
	doc.ID = oid

	var updated mongoProduct
	err = r.col.FindOneAndReplace(ctx, bson.M{"_id": oid}, doc,
		options.FindOneAndReplace().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("product %q: %w", p.Slug, domain.ErrSlugTaken)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	var deleted mongoProduct
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return deleted.toDomain(), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique slug index and the listing indexes.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) summaries(ctx context.Context, match bson.M, skip, limit int) ([]domain.ProductSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionCategories},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categoryDoc"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "slug", Value: 1},
			{Key: "price", Value: 1},
			{Key: "images", Value: 1},
			{Key: "stockStatus", Value: 1},
			{Key: "categoryDoc._id", Value: 1},
			{Key: "categoryDoc.name", Value: 1},
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var docs []mongoProductSummary
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.ProductSummary, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProduct
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// containsInsensitive matches s literally anywhere in the field, ignoring case.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
