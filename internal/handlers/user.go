package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/models"
	"urbancart-backend/internal/services"
	"urbancart-backend/internal/upload"
)

// UserService is the slice of the user service the user handlers need.
type UserService interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, loginID, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	AddAddress(ctx context.Context, userID primitive.ObjectID, in services.AddressInput) ([]models.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID primitive.ObjectID, in services.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.Address, error)
	AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error)
	AddWishlist(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WishlistItem, error)
	RemoveWishlist(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WishlistItem, error)
}

// ReviewService is the slice of the product service the review routes need.
type ReviewService interface {
	WriteReview(ctx context.Context, productID, userID primitive.ObjectID, reviewText string, rating float64) error
	UpdateReview(ctx context.Context, productID, reviewID, requesterID primitive.ObjectID, requesterRole models.Role, newText string) (*models.Review, error)
	DeleteReview(ctx context.Context, productID, reviewID, requesterID primitive.ObjectID, requesterRole models.Role) error
}

type UserHandler struct {
	users   UserService
	reviews ReviewService
	tokens  *auth.TokenService
	uploads upload.Uploader
}

func NewUserHandler(users UserService, reviews ReviewService, tokens *auth.TokenService, uploads upload.Uploader) *UserHandler {
	return &UserHandler{users: users, reviews: reviews, tokens: tokens, uploads: uploads}
}

// Signup registers a new user from a multipart form, with an optional
// profilePicture file.
func (h *UserHandler) Signup(c *gin.Context) {
	in := services.RegisterUserInput{
		FName:       c.PostForm("fname"),
		LName:       c.PostForm("lname"),
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		PhoneNumber: c.PostForm("phoneNumber"),
	}
	if in.FName == "" || in.LName == "" || in.Username == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
		respondError(c, http.StatusBadRequest, "All fields are mandatory")
		return
	}

	if file, err := c.FormFile("profilePicture"); err == nil {
		url, err := uploadFormFile(c, h.uploads, file)
		if err != nil {
			log.Printf("profile picture upload failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload profile picture")
			return
		}
		in.ProfilePicture = url
	}

	user, err := h.users.Register(c.Request.Context(), in)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "User already exists with this email. Try a different email.")
		return
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(c, http.StatusBadRequest, "Username already taken. Please choose another username.")
		return
	case err != nil:
		log.Printf("user registration failed: %v", err)
		respondError(c, http.StatusBadRequest, "Unable to register the user, try again after some time.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registration success.",
		"user":    user,
	})
}

// Login accepts an email or username as loginId, sets the access token as an
// HTTP-only cookie and echoes it in the body.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		LoginID  string `json:"loginId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.LoginID, req.Password)
	switch {
	case errors.Is(err, services.ErrPrincipalNotFound):
		respondError(c, http.StatusInternalServerError, "User not found with this email id or username. Please try with correct one.")
		return
	case errors.Is(err, services.ErrWrongPassword):
		respondError(c, http.StatusInternalServerError, "Incorrect password. Please try again.")
		return
	case err != nil:
		log.Printf("user login failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal error. Try after some time.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal error. Try after some time.")
		return
	}

	setAccessCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "User login success",
		"accessToken": token,
	})
}

// Logout clears the access token cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	clearAccessCookie(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User logout success"})
}

func (h *UserHandler) AddAddress(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var in services.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusInternalServerError, "Please fill the full address.")
		return
	}
	if in.StreetAddress == "" || in.City == "" || in.State == "" || in.PostalCode == "" || in.Country == "" {
		respondError(c, http.StatusInternalServerError, "Please fill the full address.")
		return
	}

	address, err := h.users.AddAddress(c.Request.Context(), principal.ID, in)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address added successfully.",
		"address": address,
	})
}

func (h *UserHandler) UpdateAddress(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		AddressID string `json:"addressId"`
		services.AddressInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Address not found.")
		return
	}

	address, err := h.users.UpdateAddress(c.Request.Context(), principal.ID, addressID, req.AddressInput)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address updated successfully.",
		"address": address,
	})
}

func (h *UserHandler) DeleteAddress(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		AddressID string `json:"addressId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Address not found.")
		return
	}

	address, err := h.users.DeleteAddress(c.Request.Context(), principal.ID, addressID)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address deleted successfully.",
		"address": address,
	})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "All fields are necessary.")
		return
	}
	if req.OldPassword == req.NewPassword {
		respondError(c, http.StatusBadRequest, "Old password and new password can't be the same.")
		return
	}

	err := h.users.UpdatePassword(c.Request.Context(), principal.ID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrWrongPassword):
		respondError(c, http.StatusUnauthorized, "Old password is incorrect.")
		return
	case errors.Is(err, services.ErrPrincipalNotFound):
		respondError(c, http.StatusInternalServerError, "Unauthorized action. Contact the admin.")
		return
	case err != nil:
		log.Printf("password update failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully."})
}

func (h *UserHandler) WriteReview(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID  string  `json:"productId"`
		ReviewText string  `json:"reviewText"`
		Rating     float64 `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.ReviewText == "" {
		respondError(c, http.StatusInternalServerError, "Please write at least a few words.")
		return
	}
	if req.ProductID == "" {
		respondError(c, http.StatusInternalServerError, "Please select the available product.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	if err := h.reviews.WriteReview(c.Request.Context(), productID, principal.ID, req.ReviewText, req.Rating); err != nil {
		h.respondReviewError(c, err, "submit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review submitted successfully."})
}

func (h *UserHandler) UpdateReview(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID  string `json:"productId"`
		ReviewID   string `json:"reviewId"`
		ReviewText string `json:"reviewText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ReviewID == "" {
		respondError(c, http.StatusBadRequest, "Product ID and Review ID are required.")
		return
	}
	productID, reviewID, err := parseIDPair(req.ProductID, req.ReviewID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Review not found.")
		return
	}

	review, err := h.reviews.UpdateReview(c.Request.Context(), productID, reviewID, principal.ID, principal.Role, req.ReviewText)
	if err != nil {
		h.respondReviewError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review updated successfully.",
		"review":  review,
	})
}

func (h *UserHandler) DeleteReview(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		ReviewID  string `json:"reviewId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ReviewID == "" {
		respondError(c, http.StatusBadRequest, "Product ID and Review ID are required.")
		return
	}
	productID, reviewID, err := parseIDPair(req.ProductID, req.ReviewID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Review not found.")
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), productID, reviewID, principal.ID, principal.Role); err != nil {
		h.respondReviewError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted successfully."})
}

func (h *UserHandler) AddToCart(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity == 0 {
		respondError(c, http.StatusBadRequest, "Product ID and quantity are required.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	cart, err := h.users.AddToCart(c.Request.Context(), principal.ID, productID, req.Quantity)
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, "Quantity must be a positive integer.")
		return
	case err != nil:
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *UserHandler) RemoveFromCart(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity == 0 {
		respondError(c, http.StatusBadRequest, "Product ID and quantity are required.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found in cart.")
		return
	}

	cart, err := h.users.RemoveFromCart(c.Request.Context(), principal.ID, productID, req.Quantity)
	switch {
	case errors.Is(err, models.ErrNotInCart):
		respondError(c, http.StatusNotFound, "Product not found in cart.")
		return
	case err != nil:
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product removed from cart successfully.",
		"cart":    cart,
	})
}

func (h *UserHandler) AddToWishlist(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	wishlist, err := h.users.AddWishlist(c.Request.Context(), principal.ID, productID)
	switch {
	case errors.Is(err, models.ErrAlreadyInWishlist):
		respondError(c, http.StatusBadRequest, "Product already in wishlist.")
		return
	case err != nil:
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Product added to wishlist successfully.",
		"wishlist": wishlist,
	})
}

func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	principal := auth.PrincipalFrom(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized action. Please log in first.")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	wishlist, err := h.users.RemoveWishlist(c.Request.Context(), principal.ID, productID)
	switch {
	case errors.Is(err, models.ErrNotInWishlist):
		respondError(c, http.StatusBadRequest, "Product is not in the wishlist.")
		return
	case err != nil:
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Product removed from wishlist successfully.",
		"wishlist": wishlist,
	})
}

// respondUserError maps shared service failures for the authenticated user
// routes.
func (h *UserHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPrincipalNotFound):
		respondError(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, services.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found.")
	case errors.Is(err, models.ErrAddressNotFound):
		respondError(c, http.StatusNotFound, "Address not found.")
	default:
		log.Printf("user operation failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *UserHandler) respondReviewError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found.")
	case errors.Is(err, models.ErrReviewNotFound):
		respondError(c, http.StatusNotFound, "Review not found.")
	case errors.Is(err, models.ErrReviewForbidden):
		respondError(c, http.StatusForbidden, "You are not authorized to "+action+" this review.")
	default:
		log.Printf("review %s failed: %v", action, err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

func parseIDPair(first, second string) (primitive.ObjectID, primitive.ObjectID, error) {
	a, err := primitive.ObjectIDFromHex(first)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	b, err := primitive.ObjectIDFromHex(second)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return a, b, nil
}
