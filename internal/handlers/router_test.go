package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/models"
	"urbancart-backend/internal/services"
)

type stubUserService struct {
	user        *models.User
	registerErr error
	loginUser   *models.User
	loginErr    error
	passwordErr error
	addresses   []models.Address
	address     *models.Address
	addressErr  error
	cart        []models.CartItem
	cartErr     error
	wishlist    []models.WishlistItem
	wishlistErr error
}

func (s *stubUserService) Register(_ context.Context, _ services.RegisterUserInput) (*models.User, error) {
	return s.user, s.registerErr
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*models.User, error) {
	return s.loginUser, s.loginErr
}

func (s *stubUserService) UpdatePassword(_ context.Context, _ primitive.ObjectID, _, _ string) error {
	return s.passwordErr
}

func (s *stubUserService) AddAddress(_ context.Context, _ primitive.ObjectID, _ services.AddressInput) ([]models.Address, error) {
	return s.addresses, s.addressErr
}

func (s *stubUserService) UpdateAddress(_ context.Context, _, _ primitive.ObjectID, _ services.AddressInput) (*models.Address, error) {
	return s.address, s.addressErr
}

func (s *stubUserService) DeleteAddress(_ context.Context, _, _ primitive.ObjectID) ([]models.Address, error) {
	return s.addresses, s.addressErr
}

func (s *stubUserService) AddToCart(_ context.Context, _, _ primitive.ObjectID, _ int) ([]models.CartItem, error) {
	return s.cart, s.cartErr
}

func (s *stubUserService) RemoveFromCart(_ context.Context, _, _ primitive.ObjectID, _ int) ([]models.CartItem, error) {
	return s.cart, s.cartErr
}

func (s *stubUserService) AddWishlist(_ context.Context, _, _ primitive.ObjectID) ([]models.WishlistItem, error) {
	return s.wishlist, s.wishlistErr
}

func (s *stubUserService) RemoveWishlist(_ context.Context, _, _ primitive.ObjectID) ([]models.WishlistItem, error) {
	return s.wishlist, s.wishlistErr
}

type stubReviewService struct {
	review    *models.Review
	writeErr  error
	updateErr error
	deleteErr error
}

func (s *stubReviewService) WriteReview(_ context.Context, _, _ primitive.ObjectID, _ string, _ float64) error {
	return s.writeErr
}

func (s *stubReviewService) UpdateReview(_ context.Context, _, _, _ primitive.ObjectID, _ models.Role, _ string) (*models.Review, error) {
	return s.review, s.updateErr
}

func (s *stubReviewService) DeleteReview(_ context.Context, _, _, _ primitive.ObjectID, _ models.Role) error {
	return s.deleteErr
}

type stubAdminService struct {
	admin       *models.Admin
	registerErr error
	loginAdmin  *models.Admin
	loginErr    error
	passwordErr error
}

func (s *stubAdminService) Register(_ context.Context, _ services.RegisterAdminInput) (*models.Admin, error) {
	return s.admin, s.registerErr
}

func (s *stubAdminService) Login(_ context.Context, _, _ string) (*models.Admin, error) {
	return s.loginAdmin, s.loginErr
}

func (s *stubAdminService) UpdatePassword(_ context.Context, _ primitive.ObjectID, _, _ string) error {
	return s.passwordErr
}

type stubSliderService struct {
	slider    *models.Slider
	addErr    error
	removeErr error
}

func (s *stubSliderService) AddBanner(_ context.Context, _, _, _ string) (*models.Slider, error) {
	return s.slider, s.addErr
}

func (s *stubSliderService) RemoveBanner(_ context.Context, _ primitive.ObjectID) error {
	return s.removeErr
}

type stubProductService struct {
	product   *models.Product
	addErr    error
	stock     int
	stockErr  error
	products  []models.Product
	allErr    error
	updateErr error
	deleteErr error
}

func (s *stubProductService) Add(_ context.Context, _ services.AddProductInput) (*models.Product, error) {
	return s.product, s.addErr
}

func (s *stubProductService) AddStock(_ context.Context, _ primitive.ObjectID, _ int) (int, error) {
	return s.stock, s.stockErr
}

func (s *stubProductService) All(_ context.Context) ([]models.Product, error) {
	return s.products, s.allErr
}

func (s *stubProductService) Update(_ context.Context, _ primitive.ObjectID, _ services.UpdateProductInput) (*models.Product, error) {
	return s.product, s.updateErr
}

func (s *stubProductService) Delete(_ context.Context, _ primitive.ObjectID) error {
	return s.deleteErr
}

type stubPrincipalResolver struct {
	principal *auth.Principal
	err       error
}

func (s *stubPrincipalResolver) ResolvePrincipal(_ context.Context, _ primitive.ObjectID) (*auth.Principal, error) {
	return s.principal, s.err
}

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(_ context.Context, _ string) (string, error) {
	return s.url, s.err
}

// newTestRouter fills Deps with stubs so individual tests only override what
// they exercise.
func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if deps.Tokens == nil {
		deps.Tokens = auth.NewTokenService("test-secret")
	}
	if deps.Resolver == nil {
		deps.Resolver = &stubPrincipalResolver{err: services.ErrPrincipalNotFound}
	}
	if deps.Users == nil {
		deps.Users = &stubUserService{}
	}
	if deps.Admins == nil {
		deps.Admins = &stubAdminService{}
	}
	if deps.Products == nil {
		deps.Products = &stubProductService{}
	}
	if deps.Reviews == nil {
		deps.Reviews = &stubReviewService{}
	}
	if deps.Slider == nil {
		deps.Slider = &stubSliderService{}
	}
	if deps.Uploads == nil {
		deps.Uploads = &stubUploader{url: "https://img.example/upload.jpg"}
	}
	return NewRouter(deps)
}

func userPrincipal() *auth.Principal {
	id := primitive.NewObjectID()
	return &auth.Principal{ID: id, Role: models.RoleUser, User: &models.User{ID: id, Role: models.RoleUser}}
}

func adminPrincipal() *auth.Principal {
	id := primitive.NewObjectID()
	return &auth.Principal{ID: id, Role: models.RoleAdmin, Admin: &models.Admin{ID: id, Role: models.RoleAdmin}}
}

func bearerFor(t *testing.T, tokens *auth.TokenService, principal *auth.Principal) string {
	t.Helper()
	raw, err := tokens.Issue(principal.ID, principal.Role)
	require.NoError(t, err)
	return "Bearer " + raw
}

func postJSON(router *gin.Engine, path, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.WriteString(part, "fake-image-bytes")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestRouterRejectsUnauthenticatedProtectedRoute(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := postJSON(router, "/user/add-to-cart", `{"productId":"x","quantity":1}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsUserOnAdminRoute(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	rec := postJSON(router, "/admin/remove-banner", `{"bannerId":"abc"}`, bearerFor(t, tokens, principal))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
