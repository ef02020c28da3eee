package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"urbancart-backend/internal/models"
)

// ProductService owns the product collection, including the embedded reviews.
type ProductService struct {
	products *mongo.Collection
}

func NewProductService(database *mongo.Database) *ProductService {
	return &ProductService{products: database.Collection("products")}
}

type AddProductInput struct {
	ProductName        string
	ProductDescription string
	ProductPrice       float64
	ProductStock       int
	IsFeatured         bool
	ProductImages      []models.ProductImage
}

// Add inserts a new product. Product names are unique across the catalog.
func (s *ProductService) Add(ctx context.Context, in AddProductInput) (*models.Product, error) {
	count, err := s.products.CountDocuments(ctx, bson.M{"productName": in.ProductName})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductExists
	}

	product := models.Product{
		ID:                 primitive.NewObjectID(),
		ProductName:        in.ProductName,
		ProductDescription: in.ProductDescription,
		ProductPrice:       in.ProductPrice,
		ProductImages:      in.ProductImages,
		ProductStock:       in.ProductStock,
		IsFeatured:         in.IsFeatured,
		ProductReviews:     []models.Review{},
		CreatedAt:          time.Now(),
	}
	if product.ProductImages == nil {
		product.ProductImages = []models.ProductImage{}
	}
	if _, err := s.products.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AddStock increments the stock counter by amount and returns the new value.
func (s *ProductService) AddStock(ctx context.Context, productID primitive.ObjectID, amount int) (int, error) {
	product, err := s.load(ctx, productID)
	if err != nil {
		return 0, err
	}
	product.ProductStock += amount
	if err := s.save(ctx, productID, bson.M{"productStock": product.ProductStock}); err != nil {
		return 0, err
	}
	return product.ProductStock, nil
}

// All returns the whole catalog; an empty catalog is reported as ErrNoProducts.
func (s *ProductService) All(ctx context.Context) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	return products, nil
}

type UpdateProductInput struct {
	ProductName        string
	ProductDescription string
	ProductPrice       float64
}

// Update patches only the provided fields.
func (s *ProductService) Update(ctx context.Context, productID primitive.ObjectID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	if in.ProductName != "" {
		product.ProductName = in.ProductName
	}
	if in.ProductDescription != "" {
		product.ProductDescription = in.ProductDescription
	}
	if in.ProductPrice != 0 {
		product.ProductPrice = in.ProductPrice
	}
	err = s.save(ctx, productID, bson.M{
		"productName":        product.ProductName,
		"productDescription": product.ProductDescription,
		"productPrice":       product.ProductPrice,
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product document.
func (s *ProductService) Delete(ctx context.Context, productID primitive.ObjectID) error {
	if _, err := s.load(ctx, productID); err != nil {
		return err
	}
	_, err := s.products.DeleteOne(ctx, bson.M{"_id": productID})
	return err
}

// WriteReview appends a review and persists the refreshed aggregate rating.
func (s *ProductService) WriteReview(ctx context.Context, productID, userID primitive.ObjectID, reviewText string, rating float64) error {
	product, err := s.load(ctx, productID)
	if err != nil {
		return err
	}
	product.AddReview(userID, reviewText, rating)
	return s.saveReviews(ctx, productID, product)
}

// UpdateReview replaces the text of one review, enforcing author-or-admin.
func (s *ProductService) UpdateReview(ctx context.Context, productID, reviewID, requesterID primitive.ObjectID, requesterRole models.Role, newText string) (*models.Review, error) {
	product, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	review, err := product.UpdateReview(reviewID, requesterID, requesterRole, newText)
	if err != nil {
		return nil, err
	}
	if err := s.saveReviews(ctx, productID, product); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes one review, enforcing author-or-admin, and persists
// the refreshed aggregate rating.
func (s *ProductService) DeleteReview(ctx context.Context, productID, reviewID, requesterID primitive.ObjectID, requesterRole models.Role) error {
	product, err := s.load(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.RemoveReview(reviewID, requesterID, requesterRole); err != nil {
		return err
	}
	return s.saveReviews(ctx, productID, product)
}

func (s *ProductService) load(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) save(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (s *ProductService) saveReviews(ctx context.Context, id primitive.ObjectID, product *models.Product) error {
	return s.save(ctx, id, bson.M{
		"productReviews": product.ProductReviews,
		"productRating":  product.ProductRating,
	})
}
