package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/upload"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func setAccessCookie(c *gin.Context, token string) {
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), "/", "", false, true)
}

func clearAccessCookie(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
}

// uploadFormFile spools a multipart file to the temp dir, hands the local
// path to the uploader and cleans the temp file up afterwards.
func uploadFormFile(c *gin.Context, uploads upload.Uploader, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), primitive.NewObjectID().Hex()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	defer os.Remove(path)
	return uploads.Upload(c.Request.Context(), path)
}
