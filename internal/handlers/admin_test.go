package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/models"
	"urbancart-backend/internal/services"
)

func TestAdminLoginUnknownLoginID(t *testing.T) {
	router := newTestRouter(Deps{Admins: &stubAdminService{loginErr: services.ErrPrincipalNotFound}})

	rec := postJSON(router, "/admin/admin-login", `{"loginId":"ghost","password":"x"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestAdminLoginSuccess(t *testing.T) {
	admin := &models.Admin{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	router := newTestRouter(Deps{Admins: &stubAdminService{loginAdmin: admin}})

	rec := postJSON(router, "/admin/admin-login", `{"loginId":"boss","password":"s3cret"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), auth.CookieName+"=")
	assert.Contains(t, rec.Body.String(), "accessToken")
}

func TestUploadBannerRequiresFile(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	body, contentType := multipartBody(t, map[string]string{"title": "Sale"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/upload-banner", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, tokens, principal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "banner image")
}

func TestUploadBannerSuccess(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	slider := &models.Slider{ID: primitive.NewObjectID()}
	slider.AddBanner("https://img.example/sale.jpg", "Sale", "Half off")
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Slider:   &stubSliderService{slider: slider},
		Uploads:  &stubUploader{url: "https://img.example/sale.jpg"},
	})

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Sale",
		"description": "Half off",
	}, "bannerImg", "sale.jpg")
	req := httptest.NewRequest(http.MethodPost, "/admin/upload-banner", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, tokens, principal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://img.example/sale.jpg")
}

func TestRemoveBannerSuccess(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Slider:   &stubSliderService{},
	})

	body := `{"bannerId":"` + primitive.NewObjectID().Hex() + `"}`
	rec := postJSON(router, "/admin/remove-banner", body, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRemoveBannerMissingSlider(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Slider:   &stubSliderService{removeErr: services.ErrSliderNotFound},
	})

	body := `{"bannerId":"` + primitive.NewObjectID().Hex() + `"}`
	rec := postJSON(router, "/admin/remove-banner", body, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Slider not found")
}

func TestRemoveBannerRequiresID(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	rec := postJSON(router, "/admin/remove-banner", `{}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminResetPasswordWrongOld(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := adminPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Admins:   &stubAdminService{passwordErr: services.ErrWrongPassword},
	})

	rec := postJSON(router, "/admin/reset-password",
		`{"oldPassword":"bad","newPassword":"better"}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
