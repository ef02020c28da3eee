package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Banner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	URL         string             `bson:"url" json:"url"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Slider is a singleton document holding the promotional banner list. It is
// created lazily on the first banner upload and never deleted.
type Slider struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BannerImg []Banner           `bson:"bannerImg" json:"bannerImg"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddBanner appends a banner entry and returns it.
func (s *Slider) AddBanner(url, title, description string) Banner {
	banner := Banner{
		ID:          primitive.NewObjectID(),
		URL:         url,
		Title:       title,
		Description: description,
	}
	s.BannerImg = append(s.BannerImg, banner)
	return banner
}

// RemoveBanner drops the banner with the given id.
func (s *Slider) RemoveBanner(bannerID primitive.ObjectID) error {
	for i := range s.BannerImg {
		if s.BannerImg[i].ID == bannerID {
			s.BannerImg = append(s.BannerImg[:i], s.BannerImg[i+1:]...)
			return nil
		}
	}
	return ErrBannerNotFound
}
