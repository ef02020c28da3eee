package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/models"
	"urbancart-backend/internal/services"
	"urbancart-backend/internal/upload"
)

// maxProductImages caps how many images a single add-product call accepts.
const maxProductImages = 10

// ProductService is the slice of the product service the catalog routes need.
type ProductService interface {
	Add(ctx context.Context, in services.AddProductInput) (*models.Product, error)
	AddStock(ctx context.Context, productID primitive.ObjectID, amount int) (int, error)
	All(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, productID primitive.ObjectID, in services.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, productID primitive.ObjectID) error
}

type ProductHandler struct {
	products ProductService
	uploads  upload.Uploader
}

func NewProductHandler(products ProductService, uploads upload.Uploader) *ProductHandler {
	return &ProductHandler{products: products, uploads: uploads}
}

// Add creates a product from a multipart form with up to ten productImages
// files. Individual upload failures are logged and skipped rather than
// failing the whole request.
func (h *ProductHandler) Add(c *gin.Context) {
	name := c.PostForm("productName")
	description := c.PostForm("productDescription")
	priceRaw := c.PostForm("productPrice")
	stockRaw := c.PostForm("productStock")
	if name == "" || description == "" || priceRaw == "" || stockRaw == "" {
		respondError(c, http.StatusInternalServerError, "Please fill all the necessary fields.")
		return
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Please fill all the necessary fields.")
		return
	}
	stock, err := strconv.Atoi(stockRaw)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Please fill all the necessary fields.")
		return
	}

	var images []models.ProductImage
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["productImages"]
		if len(files) > maxProductImages {
			files = files[:maxProductImages]
		}
		for _, file := range files {
			url, err := uploadFormFile(c, h.uploads, file)
			if err != nil {
				log.Printf("product image upload failed for %s: %v", file.Filename, err)
				continue
			}
			images = append(images, models.ProductImage{URL: url, AltText: description})
		}
	}

	product, err := h.products.Add(c.Request.Context(), services.AddProductInput{
		ProductName:        name,
		ProductDescription: description,
		ProductPrice:       price,
		ProductStock:       stock,
		IsFeatured:         c.PostForm("isFeatured") == "true",
		ProductImages:      images,
	})
	switch {
	case errors.Is(err, services.ErrProductExists):
		respondError(c, http.StatusInternalServerError, "Product you want to add already exists in the database.")
		return
	case err != nil:
		log.Printf("product add failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error. Try after some time.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Product added successfully.",
		"newProduct": product,
	})
}

// AddStock increments the product's stock counter.
func (h *ProductHandler) AddStock(c *gin.Context) {
	var req struct {
		ProductID    string `json:"productId"`
		ProductStock int    `json:"productStock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ProductStock == 0 {
		respondError(c, http.StatusInternalServerError, "Incorrect details provided, please fill up proper details.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	updated, err := h.products.AddStock(c.Request.Context(), productID, req.ProductStock)
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Product stock updated successfully.",
		"updatedStock": updated,
	})
}

func (h *ProductHandler) All(c *gin.Context) {
	products, err := h.products.All(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrNoProducts):
		respondError(c, http.StatusNotFound, "No products found.")
		return
	case err != nil:
		log.Printf("product listing failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal error. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Products retrieved successfully.",
		"products": products,
	})
}

// Update patches name, description and price; absent fields are left alone.
func (h *ProductHandler) Update(c *gin.Context) {
	var req struct {
		ProductID          string  `json:"productId"`
		ProductName        string  `json:"productName"`
		ProductDescription string  `json:"productDescription"`
		ProductPrice       float64 `json:"productPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, http.StatusInternalServerError, "Please provide a valid product ID.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	product, err := h.products.Update(c.Request.Context(), productID, services.UpdateProductInput{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		ProductPrice:       req.ProductPrice,
	})
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully.",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, http.StatusInternalServerError, "Please provide a valid product ID.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Product with ID: %s has been deleted successfully.", req.ProductID),
	})
}

func (h *ProductHandler) respondProductError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProductNotFound) {
		respondError(c, http.StatusNotFound, "Product not found.")
		return
	}
	log.Printf("product operation failed: %v", err)
	respondError(c, http.StatusInternalServerError, "Internal error. Try again after some time.")
}
