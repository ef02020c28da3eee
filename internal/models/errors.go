package models

import "errors"

var (
	// ErrInvalidQuantity indicates a non-positive cart quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrNotInCart indicates no cart line item exists for the product.
	ErrNotInCart = errors.New("product not found in cart")
	// ErrAlreadyInWishlist indicates a wishlist entry already exists for the product.
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	// ErrNotInWishlist indicates no wishlist entry exists for the product.
	ErrNotInWishlist = errors.New("product is not in the wishlist")
	// ErrAddressNotFound indicates no address with the given id belongs to the user.
	ErrAddressNotFound = errors.New("address not found")
	// ErrReviewNotFound indicates no review with the given id exists on the product.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewForbidden indicates the requester is neither the review author nor an admin.
	ErrReviewForbidden = errors.New("not authorized to modify this review")
	// ErrBannerNotFound indicates no banner with the given id exists on the slider.
	ErrBannerNotFound = errors.New("banner not found")
)
