package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/models"
)

// PrincipalService resolves token subjects against the flat two-collection
// identity split: the user collection is probed first, then admins, and a
// user match wins. Password hashes are projected out before the record is
// attached to a request.
type PrincipalService struct {
	users  *mongo.Collection
	admins *mongo.Collection
}

func NewPrincipalService(database *mongo.Database) *PrincipalService {
	return &PrincipalService{
		users:  database.Collection("users"),
		admins: database.Collection("admins"),
	}
}

var noPassword = options.FindOne().SetProjection(bson.M{"password": 0})

func (s *PrincipalService) ResolvePrincipal(ctx context.Context, id primitive.ObjectID) (*auth.Principal, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}, noPassword).Decode(&user)
	if err == nil {
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		return &auth.Principal{ID: user.ID, Role: user.Role, User: &user}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	var admin models.Admin
	err = s.admins.FindOne(ctx, bson.M{"_id": id}, noPassword).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	return &auth.Principal{ID: admin.ID, Role: admin.Role, Admin: &admin}, nil
}
