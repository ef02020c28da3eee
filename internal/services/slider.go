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

// SliderService owns the singleton banner slider document.
type SliderService struct {
	sliders *mongo.Collection
}

func NewSliderService(database *mongo.Database) *SliderService {
	return &SliderService{sliders: database.Collection("sliders")}
}

// AddBanner appends a banner, creating the slider document on first use,
// and returns the up-to-date slider.
func (s *SliderService) AddBanner(ctx context.Context, url, title, description string) (*models.Slider, error) {
	slider, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSliderNotFound) {
			return nil, err
		}
		now := time.Now()
		created := models.Slider{
			ID:        primitive.NewObjectID(),
			BannerImg: []models.Banner{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		created.AddBanner(url, title, description)
		if _, err := s.sliders.InsertOne(ctx, created); err != nil {
			return nil, err
		}
		return &created, nil
	}

	slider.AddBanner(url, title, description)
	if err := s.save(ctx, slider); err != nil {
		return nil, err
	}
	return slider, nil
}

// RemoveBanner drops the banner with the given id from the slider.
func (s *SliderService) RemoveBanner(ctx context.Context, bannerID primitive.ObjectID) error {
	slider, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := slider.RemoveBanner(bannerID); err != nil {
		return err
	}
	return s.save(ctx, slider)
}

func (s *SliderService) load(ctx context.Context) (*models.Slider, error) {
	var slider models.Slider
	err := s.sliders.FindOne(ctx, bson.M{}).Decode(&slider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSliderNotFound
		}
		return nil, err
	}
	return &slider, nil
}

func (s *SliderService) save(ctx context.Context, slider *models.Slider) error {
	_, err := s.sliders.UpdateOne(ctx, bson.M{"_id": slider.ID}, bson.M{"$set": bson.M{
		"bannerImg": slider.BannerImg,
		"updatedAt": time.Now(),
	}})
	return err
}
