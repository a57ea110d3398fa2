package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a user record. Email uniquely identifies at most one record; Role
// is empty until an administrator grants one.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// RoleAdmin is the only role the administrator gate accepts.
const RoleAdmin = "admin"

// Product is a catalog entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Category is a catalog grouping.
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// CartItem is a product placed in a user's cart.
type CartItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	ProductID   string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Order statuses used by the revenue aggregation.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusComplete   = "Complete"
)

// Order is a placed order.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail  string             `bson:"userEmail" json:"userEmail"`
	Items      []CartItem         `bson:"items,omitempty" json:"items,omitempty"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Payment is the persisted terminal result of a gateway transaction. The
// payment provider stays authoritative for transaction state; this record is
// the local view written once a payment completes.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PaymentID string             `bson:"paymentId" json:"paymentId"`
	TrxID     string             `bson:"trxId,omitempty" json:"trxId,omitempty"`
	OrderID   string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Amount    string             `bson:"amount,omitempty" json:"amount,omitempty"`
	Status    string             `bson:"status" json:"status"`
	PaidAt    time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// RevenueSummary is order revenue grouped by status.
type RevenueSummary struct {
	Pending    float64 `json:"pending"`
	Processing float64 `json:"processing"`
	Completed  float64 `json:"completed"`
}

// UpdateResult reports what a field update touched.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
