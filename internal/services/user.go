package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"urbancart-backend/internal/models"
)

const bcryptCost = 10

// UserService owns the user collection. Cart operations also read the
// product collection for current unit prices.
type UserService struct {
	users    *mongo.Collection
	products *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{
		users:    database.Collection("users"),
		products: database.Collection("products"),
	}
}

type RegisterUserInput struct {
	FName          string
	LName          string
	Username       string
	Email          string
	Password       string
	PhoneNumber    string
	ProfilePicture string
}

// Register creates a new user with a hashed password and the User role.
// Email uniqueness is checked before username, with distinct errors.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"email": in.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	count, err = s.users.CountDocuments(ctx, bson.M{"username": in.Username})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:             primitive.NewObjectID(),
		FName:          in.FName,
		LName:          in.LName,
		Username:       in.Username,
		Email:          in.Email,
		Password:       string(hashed),
		PhoneNumber:    in.PhoneNumber,
		ProfilePicture: in.ProfilePicture,
		Address:        []models.Address{},
		Cart:           []models.CartItem{},
		Wishlist:       []models.WishlistItem{},
		OrderHistory:   []models.OrderRecord{},
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Login finds the user by email or username and checks the password.
func (s *UserService) Login(ctx context.Context, loginID, password string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": loginID}, {"username": loginID}},
	}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}
	return &user, nil
}

// UpdatePassword verifies the old password before storing a new hash.
func (s *UserService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.save(ctx, userID, bson.M{"password": string(hashed)})
}

type AddressInput struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

// AddAddress appends a new address and returns the full list.
func (s *UserService) AddAddress(ctx context.Context, userID primitive.ObjectID, in AddressInput) ([]models.Address, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Address = append(user.Address, models.Address{
		ID:            primitive.NewObjectID(),
		StreetAddress: in.StreetAddress,
		City:          in.City,
		State:         in.State,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
	})
	if err := s.save(ctx, userID, bson.M{"address": user.Address}); err != nil {
		return nil, err
	}
	return user.Address, nil
}

// UpdateAddress patches only the provided fields of one address and returns it.
func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID primitive.ObjectID, in AddressInput) (*models.Address, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	addr := user.AddressByID(addressID)
	if addr == nil {
		return nil, models.ErrAddressNotFound
	}
	if in.StreetAddress != "" {
		addr.StreetAddress = in.StreetAddress
	}
	if in.City != "" {
		addr.City = in.City
	}
	if in.State != "" {
		addr.State = in.State
	}
	if in.PostalCode != "" {
		addr.PostalCode = in.PostalCode
	}
	if in.Country != "" {
		addr.Country = in.Country
	}
	if err := s.save(ctx, userID, bson.M{"address": user.Address}); err != nil {
		return nil, err
	}
	return addr, nil
}

// DeleteAddress removes one address and returns the remaining list.
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.Address, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveAddress(addressID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, bson.M{"address": user.Address}); err != nil {
		return nil, err
	}
	return user.Address, nil
}

// AddToCart merges the product into the cart at its current unit price.
func (s *UserService) AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := user.AddCartItem(productID, quantity, product.ProductPrice); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, bson.M{"cart": user.Cart}); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// RemoveFromCart takes quantity off the cart line, repricing any remainder
// against the product's current unit price.
func (s *UserService) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveCartItem(productID, quantity, product.ProductPrice); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, bson.M{"cart": user.Cart}); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// AddWishlist snapshots the product into the wishlist.
func (s *UserService) AddWishlist(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WishlistItem, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := user.AddWishlistItem(product); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, bson.M{"wishlist": user.Wishlist}); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

// RemoveWishlist drops the product from the wishlist.
func (s *UserService) RemoveWishlist(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WishlistItem, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := user.RemoveWishlistItem(productID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, bson.M{"wishlist": user.Wishlist}); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

func (s *UserService) load(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) loadProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
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

func (s *UserService) save(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}
