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

// AdminService owns the admin collection.
type AdminService struct {
	admins *mongo.Collection
}

func NewAdminService(database *mongo.Database) *AdminService {
	return &AdminService{admins: database.Collection("admins")}
}

type RegisterAdminInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	PhoneNumber    string
	ProfilePicture string
}

// Register creates a new admin with a hashed password and the Admin role.
func (s *AdminService) Register(ctx context.Context, in RegisterAdminInput) (*models.Admin, error) {
	count, err := s.admins.CountDocuments(ctx, bson.M{"email": in.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	count, err = s.admins.CountDocuments(ctx, bson.M{"username": in.Username})
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
	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		FullName:       in.FullName,
		Username:       in.Username,
		Email:          in.Email,
		Password:       string(hashed),
		PhoneNumber:    in.PhoneNumber,
		ProfilePicture: in.ProfilePicture,
		Role:           models.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.admins.InsertOne(ctx, admin); err != nil {
		return nil, err
	}
	sanitized := admin.Sanitized()
	return &sanitized, nil
}

// Login finds the admin by email or username and checks the password.
func (s *AdminService) Login(ctx context.Context, loginID, password string) (*models.Admin, error) {
	var admin models.Admin
	err := s.admins.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": loginID}, {"username": loginID}},
	}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}
	return &admin, nil
}

// UpdatePassword verifies the old password before storing a new hash.
func (s *AdminService) UpdatePassword(ctx context.Context, adminID primitive.ObjectID, oldPassword, newPassword string) error {
	var admin models.Admin
	err := s.admins.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPrincipalNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	_, err = s.admins.UpdateOne(ctx, bson.M{"_id": adminID}, bson.M{"$set": bson.M{
		"password":  string(hashed),
		"updatedAt": time.Now(),
	}})
	return err
}
