// Package mongo implements the data access gateway on MongoDB.
package mongo

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nin-supply/commerce/internal/errors"
	"github.com/nin-supply/commerce/internal/store"
)

// Collection names match the original deployment.
const (
	collUsers    = "users"
	collProducts = "products"
	collCategory = "category"
	collCarts    = "carts"
	collOrders   = "all-orders"
	collPayments = "payments"
)

// Store is the MongoDB-backed data access gateway.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB with the Stable API v1 options and returns a Store
// scoped to the named database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Users() store.UserStore          { return &users{c: s.db.Collection(collUsers)} }
func (s *Store) Products() store.ProductStore    { return &products{c: s.db.Collection(collProducts)} }
func (s *Store) Categories() store.CategoryStore { return &categories{c: s.db.Collection(collCategory)} }
func (s *Store) Carts() store.CartStore          { return &carts{c: s.db.Collection(collCarts)} }
func (s *Store) Orders() store.OrderStore        { return &orders{c: s.db.Collection(collOrders)} }
func (s *Store) Payments() store.PaymentStore    { return &payments{c: s.db.Collection(collPayments)} }

// Ping verifies the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.BadRequest("invalid id").WithDetails("id", id)
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.InsertedID)
}

// Users ----------------------------------------------------------------------

type users struct {
	c *mongo.Collection
}

func (u *users) FindByEmail(ctx context.Context, email string) (*store.User, error) {
	var user store.User
	err := u.c.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Upstream("failed to load user", err)
	}
	return &user, nil
}

func (u *users) Insert(ctx context.Context, user store.User) (string, error) {
	user.ID = primitive.NilObjectID
	res, err := u.c.InsertOne(ctx, user)
	if err != nil {
		return "", errors.Upstream("failed to insert user", err)
	}
	return insertedID(res), nil
}

func (u *users) UpdateRole(ctx context.Context, id, role string) (store.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return store.UpdateResult{}, err
	}
	res, err := u.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return store.UpdateResult{}, errors.Upstream("failed to update user role", err)
	}
	return store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (u *users) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := u.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, errors.Upstream("failed to delete user", err)
	}
	return res.DeletedCount, nil
}

func (u *users) All(ctx context.Context) ([]store.User, error) {
	cursor, err := u.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Upstream("failed to list users", err)
	}
	out := make([]store.User, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode users", err)
	}
	return out, nil
}

// Products -------------------------------------------------------------------

type products struct {
	c *mongo.Collection
}

func (p *products) Insert(ctx context.Context, product store.Product) (string, error) {
	product.ID = primitive.NilObjectID
	res, err := p.c.InsertOne(ctx, product)
	if err != nil {
		return "", errors.Upstream("failed to insert product", err)
	}
	return insertedID(res), nil
}

func (p *products) All(ctx context.Context) ([]store.Product, error) {
	cursor, err := p.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Upstream("failed to list products", err)
	}
	out := make([]store.Product, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode products", err)
	}
	return out, nil
}

// Categories -----------------------------------------------------------------

type categories struct {
	c *mongo.Collection
}

func (g *categories) All(ctx context.Context) ([]store.Category, error) {
	cursor, err := g.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Upstream("failed to list categories", err)
	}
	out := make([]store.Category, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode categories", err)
	}
	return out, nil
}

// Carts ----------------------------------------------------------------------

type carts struct {
	c *mongo.Collection
}

func (ca *carts) FindByUserEmail(ctx context.Context, email string) ([]store.CartItem, error) {
	cursor, err := ca.c.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, errors.Upstream("failed to list cart items", err)
	}
	out := make([]store.CartItem, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode cart items", err)
	}
	return out, nil
}

func (ca *carts) Insert(ctx context.Context, item store.CartItem) (string, error) {
	item.ID = primitive.NilObjectID
	res, err := ca.c.InsertOne(ctx, item)
	if err != nil {
		return "", errors.Upstream("failed to insert cart item", err)
	}
	return insertedID(res), nil
}

func (ca *carts) Update(ctx context.Context, id string, item store.CartItem) (store.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return store.UpdateResult{}, err
	}
	item.ID = primitive.NilObjectID
	res, err := ca.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": item})
	if err != nil {
		return store.UpdateResult{}, errors.Upstream("failed to update cart item", err)
	}
	return store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (ca *carts) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := ca.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, errors.Upstream("failed to delete cart item", err)
	}
	return res.DeletedCount, nil
}

// Orders ---------------------------------------------------------------------

type orders struct {
	c *mongo.Collection
}

func (o *orders) Insert(ctx context.Context, order store.Order) (string, error) {
	order.ID = primitive.NilObjectID
	res, err := o.c.InsertOne(ctx, order)
	if err != nil {
		return "", errors.Upstream("failed to insert order", err)
	}
	return insertedID(res), nil
}

func (o *orders) FindByUserEmail(ctx context.Context, email string) ([]store.Order, error) {
	cursor, err := o.c.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, errors.Upstream("failed to list orders", err)
	}
	out := make([]store.Order, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode orders", err)
	}
	return out, nil
}

func (o *orders) All(ctx context.Context) ([]store.Order, error) {
	cursor, err := o.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Upstream("failed to list orders", err)
	}
	out := make([]store.Order, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Upstream("failed to decode orders", err)
	}
	return out, nil
}

func (o *orders) RevenueByStatus(ctx context.Context) (store.RevenueSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}

	cursor, err := o.c.Aggregate(ctx, pipeline)
	if err != nil {
		return store.RevenueSummary{}, errors.Upstream("failed to aggregate revenue", err)
	}

	var groups []struct {
		Status  string  `bson:"_id"`
		Revenue float64 `bson:"totalRevenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return store.RevenueSummary{}, errors.Upstream("failed to decode revenue groups", err)
	}

	var summary store.RevenueSummary
	for _, g := range groups {
		switch g.Status {
		case store.OrderStatusPending:
			summary.Pending = g.Revenue
		case store.OrderStatusProcessing:
			summary.Processing = g.Revenue
		case store.OrderStatusComplete:
			summary.Completed = g.Revenue
		}
	}
	return summary, nil
}

// Payments -------------------------------------------------------------------

type payments struct {
	c *mongo.Collection
}

func (p *payments) Insert(ctx context.Context, payment store.Payment) (string, error) {
	payment.ID = primitive.NilObjectID
	res, err := p.c.InsertOne(ctx, payment)
	if err != nil {
		return "", errors.Upstream("failed to insert payment", err)
	}
	return insertedID(res), nil
}

func (p *payments) FindByPaymentID(ctx context.Context, paymentID string) (*store.Payment, error) {
	var payment store.Payment
	err := p.c.FindOne(ctx, bson.M{"paymentId": paymentID}).Decode(&payment)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Upstream("failed to load payment", err)
	}
	return &payment, nil
}
