package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopfront/storefront/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrderItem struct {
	Product  *primitive.ObjectID `bson:"product"`
	Quantity int                 `bson:"quantity"`
	Price    float64             `bson:"price"`
}

type mongoOwner struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type mongoOrder struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	User              primitive.ObjectID `bson:"user"`
	Items             []mongoOrderItem   `bson:"items"`
	Total             float64            `bson:"total"`
	Status            string             `bson:"status"`
	CheckoutSessionID string             `bson:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`

	// populated by the owner lookups only
	OwnerDoc []mongoOwner `bson:"ownerDoc,omitempty"`
}

func (m *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.OrderItem{
			ProductID: hexOrEmpty(it.Product),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	status := domain.OrderStatus(m.Status)
	if status == "" {
		status = domain.OrderPending
	}
	return &domain.Order{
		ID:                m.ID.Hex(),
		UserID:            m.User.Hex(),
		Items:             items,
		Total:             m.Total,
		Status:            status,
		CheckoutSessionID: m.CheckoutSessionID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// owner resolves the joined user, falling back to the placeholder.
func (m *mongoOrder) owner() domain.OrderOwner {
	if len(m.OwnerDoc) == 0 {
		return domain.UnknownOwner
	}
	o := domain.OrderOwner{Name: m.OwnerDoc[0].Name, Email: m.OwnerDoc[0].Email}
	if o.Name == "" {
		o.Name = domain.UnknownOwner.Name
	}
	if o.Email == "" {
		o.Email = domain.UnknownOwner.Email
	}
	return o
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user, err := objectID(o.UserID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	items := make([]mongoOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, mongoOrderItem{
			Product:  optionalObjectID(it.ProductID),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	doc := mongoOrder{
		ID:                primitive.NewObjectID(),
		User:              user,
		Items:             items,
		Total:             o.Total,
		Status:            string(o.Status),
		CheckoutSessionID: o.CheckoutSessionID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("checkout session %s: %w", o.CheckoutSessionID, domain.ErrDuplicateOrder)
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	var doc mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Order{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user": user}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// ListWithOwners returns every order newest first, joined with its owner.
func (r *OrderRepository) ListWithOwners(ctx context.Context) ([]*domain.OrderWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.withOwners(ctx, 0)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.OrderWithOwner, 0, len(docs))
	for i := range docs {
		out = append(out, &domain.OrderWithOwner{Order: *docs[i].toDomain(), Owner: docs[i].owner()})
	}
	return out, nil
}

// Recent returns the newest orders as dashboard rows.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]domain.RecentOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.withOwners(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RecentOrder, 0, len(docs))
	for i := range docs {
		o := docs[i].toDomain()
		out = append(out, domain.RecentOrder{
			ID:        o.ID,
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			UserEmail: docs[i].owner().Email,
		})
	}
	return out, nil
}

// UpdateStatus sets the status only while the order is still in `from`.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":    string(to),
		"updatedAt": time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the listing indexes and the one-order-per-session index.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{
			Keys: bson.D{{Key: "checkoutSessionId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"checkoutSessionId": bson.M{"$type": "string"}}),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *OrderRepository) withOwners(ctx context.Context, limit int) ([]mongoOrder, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ownerDoc"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "ownerDoc.password", Value: 0},
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list orders with owners: %w", err)
	}
	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return docs, nil
}
