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

type cartDocument struct {
	ID          string               `bson:"_id"`
	OwnerID     string               `bson:"owner_id"`
	Items       []cartItemDocument   `bson:"items"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type cartItemDocument struct {
	ProductID string               `bson:"product_id"`
	Title     string               `bson:"title"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image"`
	Quantity  int                  `bson:"quantity"`
}

// MongoCartRepository stores carts as MongoDB documents keyed by owner_id.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection(cartsCollection)}
}

// FindByOwner loads the cart owned by ownerID.
func (r *MongoCartRepository) FindByOwner(ctx context.Context, ownerID string) (*models.Cart, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart for owner %s: %w", ownerID, err)
	}
	return doc.toModel()
}

// Create inserts a new cart document.
func (r *MongoCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	cart.Recalculate()

	doc, err := newCartDocument(cart)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCartExists
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Save replaces the whole cart document.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		return fmt.Errorf("failed to save cart for owner %s: missing id", cart.OwnerID)
	}
	cart.UpdatedAt = time.Now().UTC()
	cart.Recalculate()

	doc, err := newCartDocument(cart)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	_, err = r.collection.ReplaceOne(ctx,
		bson.M{"_id": cart.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func newCartDocument(cart *models.Cart) (cartDocument, error) {
	var conv amountConverter
	items := make([]cartItemDocument, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemDocument{
			ProductID: it.ProductID.String(),
			Title:     it.Title,
			Price:     conv.to(it.Price),
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	doc := cartDocument{
		ID:          cart.ID,
		OwnerID:     cart.OwnerID,
		Items:       items,
		TotalAmount: conv.to(cart.TotalAmount),
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
	return doc, conv.err
}

func (d cartDocument) toModel() (*models.Cart, error) {
	var conv amountConverter
	items := make([]models.CartLineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.CartLineItem{
			ProductID: models.ProductID(it.ProductID),
			Title:     it.Title,
			Price:     conv.from(it.Price),
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	if conv.err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", d.ID, conv.err)
	}
	cart := &models.Cart{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	cart.Recalculate()
	return cart, nil
}
