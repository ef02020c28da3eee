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

// AdminService is the slice of the admin service the admin handlers need.
type AdminService interface {
	Register(ctx context.Context, in services.RegisterAdminInput) (*models.Admin, error)
	Login(ctx context.Context, loginID, password string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, adminID primitive.ObjectID, oldPassword, newPassword string) error
}

// SliderService manages the singleton promotional banner document.
type SliderService interface {
	AddBanner(ctx context.Context, url, title, description string) (*models.Slider, error)
	RemoveBanner(ctx context.Context, bannerID primitive.ObjectID) error
}

type AdminHandler struct {
	admins  AdminService
	slider  SliderService
	tokens  *auth.TokenService
	uploads upload.Uploader
}

func NewAdminHandler(admins AdminService, slider SliderService, tokens *auth.TokenService, uploads upload.Uploader) *AdminHandler {
	return &AdminHandler{admins: admins, slider: slider, tokens: tokens, uploads: uploads}
}

// Signup registers a new admin from a multipart form, with an optional
// profilePicture file.
func (h *AdminHandler) Signup(c *gin.Context) {
	in := services.RegisterAdminInput{
		FullName:    c.PostForm("fullname"),
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		PhoneNumber: c.PostForm("phoneNumber"),
	}
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
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

	admin, err := h.admins.Register(c.Request.Context(), in)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "User already exists with this email. Try a different email.")
		return
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(c, http.StatusBadRequest, "Username already taken. Please choose another username.")
		return
	case err != nil:
		log.Printf("admin registration failed: %v", err)
		respondError(c, http.StatusBadRequest, "Unable to register the admin, try again after some time.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Admin registration successful.",
		"admin":   admin,
	})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		LoginID  string `json:"loginId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	admin, err := h.admins.Login(c.Request.Context(), req.LoginID, req.Password)
	switch {
	case errors.Is(err, services.ErrPrincipalNotFound):
		respondError(c, http.StatusBadRequest, "Admin not found with this email or username. Please try again with the correct one.")
		return
	case errors.Is(err, services.ErrWrongPassword):
		respondError(c, http.StatusBadRequest, "Incorrect password. Please try again.")
		return
	case err != nil:
		log.Printf("admin login failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error. Please try again later.")
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error. Please try again later.")
		return
	}

	setAccessCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Admin login successful.",
		"accessToken": token,
	})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	clearAccessCookie(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Admin logout success"})
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
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

	err := h.admins.UpdatePassword(c.Request.Context(), principal.ID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrWrongPassword):
		respondError(c, http.StatusUnauthorized, "Old password is incorrect.")
		return
	case errors.Is(err, services.ErrPrincipalNotFound):
		respondError(c, http.StatusInternalServerError, "Unauthorized action. Contact the admin.")
		return
	case err != nil:
		log.Printf("admin password update failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully."})
}

// UploadBanner uploads the bannerImg file and appends it to the slider,
// creating the singleton document on first use.
func (h *AdminHandler) UploadBanner(c *gin.Context) {
	file, err := c.FormFile("bannerImg")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Please upload a banner image.")
		return
	}

	url, err := uploadFormFile(c, h.uploads, file)
	if err != nil {
		log.Printf("banner upload failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Error uploading the image. Try again later.")
		return
	}

	slider, err := h.slider.AddBanner(c.Request.Context(), url, c.PostForm("title"), c.PostForm("description"))
	if err != nil {
		log.Printf("banner save failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Banner image uploaded successfully.",
		"slider":  slider,
	})
}

func (h *AdminHandler) RemoveBanner(c *gin.Context) {
	var req struct {
		BannerID string `json:"bannerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BannerID == "" {
		respondError(c, http.StatusBadRequest, "Banner ID is required.")
		return
	}
	bannerID, err := primitive.ObjectIDFromHex(req.BannerID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Banner not found.")
		return
	}

	err = h.slider.RemoveBanner(c.Request.Context(), bannerID)
	switch {
	case errors.Is(err, services.ErrSliderNotFound):
		respondError(c, http.StatusNotFound, "Slider not found.")
		return
	case errors.Is(err, models.ErrBannerNotFound):
		respondError(c, http.StatusNotFound, "Banner not found.")
		return
	case err != nil:
		log.Printf("banner removal failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner removed successfully."})
}
