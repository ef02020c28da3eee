package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductImage struct {
	URL     string `bson:"url" json:"url"`
	AltText string `bson:"altText" json:"altText"`
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ReviewText string             `bson:"reviewText" json:"reviewText"`
	Rating     float64            `bson:"rating" json:"rating"`
}

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductName        string             `bson:"productName" json:"productName"`
	ProductDescription string             `bson:"productDescription" json:"productDescription"`
	ProductPrice       float64            `bson:"productPrice" json:"productPrice"`
	ProductImages      []ProductImage     `bson:"productImages" json:"productImages"`
	ProductCategory    primitive.ObjectID `bson:"productCategory,omitempty" json:"productCategory,omitempty"`
	ProductStock       int                `bson:"productStock" json:"productStock"`
	ProductRating      float64            `bson:"productRating" json:"productRating"`
	IsFeatured         bool               `bson:"isFeatured" json:"isFeatured"`
	ProductReviews     []Review           `bson:"productReviews" json:"productReviews"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// FirstImageURL returns the url of the first product image, or "".
func (p *Product) FirstImageURL() string {
	if len(p.ProductImages) == 0 {
		return ""
	}
	return p.ProductImages[0].URL
}

// AddReview appends a review and refreshes the aggregate rating.
func (p *Product) AddReview(userID primitive.ObjectID, reviewText string, rating float64) Review {
	review := Review{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ReviewText: reviewText,
		Rating:     rating,
	}
	p.ProductReviews = append(p.ProductReviews, review)
	p.recalcRating()
	return review
}

// RemoveReview deletes the review with the given id. Only the review's author
// or an admin may delete it. The aggregate rating is recomputed over the
// remaining reviews, falling back to zero when none are left.
func (p *Product) RemoveReview(reviewID, requesterID primitive.ObjectID, requesterRole Role) error {
	for i := range p.ProductReviews {
		if p.ProductReviews[i].ID != reviewID {
			continue
		}
		if p.ProductReviews[i].UserID != requesterID && requesterRole != RoleAdmin {
			return ErrReviewForbidden
		}
		p.ProductReviews = append(p.ProductReviews[:i], p.ProductReviews[i+1:]...)
		p.recalcRating()
		return nil
	}
	return ErrReviewNotFound
}

// UpdateReview replaces the text of the review with the given id, under the
// same authorization rule as RemoveReview. The numeric rating is left as-is,
// so the aggregate does not change. An empty newText keeps the old text.
func (p *Product) UpdateReview(reviewID, requesterID primitive.ObjectID, requesterRole Role, newText string) (*Review, error) {
	for i := range p.ProductReviews {
		if p.ProductReviews[i].ID != reviewID {
			continue
		}
		if p.ProductReviews[i].UserID != requesterID && requesterRole != RoleAdmin {
			return nil, ErrReviewForbidden
		}
		if newText != "" {
			p.ProductReviews[i].ReviewText = newText
		}
		return &p.ProductReviews[i], nil
	}
	return nil, ErrReviewNotFound
}

func (p *Product) recalcRating() {
	if len(p.ProductReviews) == 0 {
		p.ProductRating = 0
		return
	}
	var total float64
	for i := range p.ProductReviews {
		total += p.ProductReviews[i].Rating
	}
	p.ProductRating = total / float64(len(p.ProductReviews))
}
