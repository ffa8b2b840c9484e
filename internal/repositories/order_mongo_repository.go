package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibecart/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDocument struct {
	ID            string               `bson:"_id"`
	OrderNumber   string               `bson:"order_number"`
	CustomerName  string               `bson:"customer_name"`
	CustomerEmail string               `bson:"customer_email"`
	Items         []orderItemDocument  `bson:"items"`
	TotalAmount   primitive.Decimal128 `bson:"total_amount"`
	Tax           primitive.Decimal128 `bson:"tax"`
	Shipping      primitive.Decimal128 `bson:"shipping"`
	GrandTotal    primitive.Decimal128 `bson:"grand_total"`
	Status        string               `bson:"status"`
	CreatedAt     time.Time            `bson:"created_at"`
}

type orderItemDocument struct {
	ProductID string               `bson:"product_id"`
	Name      string               `bson:"name"`
	Price     primitive.Decimal128 `bson:"price"`
	Quantity  int                  `bson:"quantity"`
}

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection(ordersCollection)}
}

// Create inserts an order document.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	doc, err := newOrderDocument(order)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, order.OrderNumber)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByOrderNumber retrieves a single order by its order number.
func (r *MongoOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var doc orderDocument
	err := r.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderNumber, err)
	}
	return doc.toModel()
}

// ListRecent retrieves the newest orders first.
func (r *MongoOrderRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func newOrderDocument(o *models.Order) (orderDocument, error) {
	var conv amountConverter
	items := make([]orderItemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDocument{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Price:     conv.to(it.Price),
			Quantity:  it.Quantity,
		})
	}
	doc := orderDocument{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         items,
		TotalAmount:   conv.to(o.TotalAmount),
		Tax:           conv.to(o.Tax),
		Shipping:      conv.to(o.Shipping),
		GrandTotal:    conv.to(o.GrandTotal),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
	return doc, conv.err
}

func (d orderDocument) toModel() (*models.Order, error) {
	var conv amountConverter
	items := make([]models.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.OrderItem{
			ProductID: models.ProductID(it.ProductID),
			Name:      it.Name,
			Price:     conv.from(it.Price),
			Quantity:  it.Quantity,
		})
	}
	order := &models.Order{
		ID:            d.ID,
		OrderNumber:   d.OrderNumber,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Items:         items,
		TotalAmount:   conv.from(d.TotalAmount),
		Tax:           conv.from(d.Tax),
		Shipping:      conv.from(d.Shipping),
		GrandTotal:    conv.from(d.GrandTotal),
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
	if conv.err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", d.OrderNumber, conv.err)
	}
	return order, nil
}
