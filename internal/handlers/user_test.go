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

func TestSignupMissingFieldFails(t *testing.T) {
	router := newTestRouter(Deps{})

	// phoneNumber deliberately absent.
	body, contentType := multipartBody(t, map[string]string{
		"fname":    "Ada",
		"lname":    "Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "s3cret",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/user/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestSignupSuccess(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Role: models.RoleUser}
	router := newTestRouter(Deps{Users: &stubUserService{user: user}})

	body, contentType := multipartBody(t, map[string]string{
		"fname":       "Ada",
		"lname":       "Lovelace",
		"username":    "ada",
		"email":       "ada@example.com",
		"password":    "s3cret",
		"phoneNumber": "5551234",
	}, "profilePicture", "me.png")

	req := httptest.NewRequest(http.MethodPost, "/user/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := newTestRouter(Deps{Users: &stubUserService{registerErr: services.ErrEmailTaken}})

	body, contentType := multipartBody(t, map[string]string{
		"fname":       "Ada",
		"lname":       "Lovelace",
		"username":    "ada",
		"email":       "ada@example.com",
		"password":    "s3cret",
		"phoneNumber": "5551234",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/user/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	router := newTestRouter(Deps{Users: &stubUserService{loginErr: services.ErrWrongPassword}})

	rec := postJSON(router, "/user/login", `{"loginId":"ada","password":"nope"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestLoginSuccessSetsCookieAndEchoesToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	router := newTestRouter(Deps{Users: &stubUserService{loginUser: user}})

	rec := postJSON(router, "/user/login", `{"loginId":"ada","password":"s3cret"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, auth.CookieName+"=")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, rec.Body.String(), "accessToken")
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/user/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), auth.CookieName+"=")
}

func TestAddToCartReturnsMergedCart(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	productID := primitive.NewObjectID()
	cart := []models.CartItem{{ProductID: productID, Quantity: 5, Price: 50}}
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Users:    &stubUserService{cart: cart},
	})

	rec := postJSON(router, "/user/add-to-cart",
		`{"productId":"`+productID.Hex()+`","quantity":3}`, bearerFor(t, tokens, principal))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":5`)
	assert.Contains(t, rec.Body.String(), `"price":50`)
}

func TestAddToCartMissingQuantity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	rec := postJSON(router, "/user/add-to-cart",
		`{"productId":"`+primitive.NewObjectID().Hex()+`"}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFromCartMissingLine(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Users:    &stubUserService{cartErr: models.ErrNotInCart},
	})

	rec := postJSON(router, "/user/remove-cart",
		`{"productId":"`+primitive.NewObjectID().Hex()+`","quantity":1}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddToWishlistDuplicate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Users:    &stubUserService{wishlistErr: models.ErrAlreadyInWishlist},
	})

	rec := postJSON(router, "/user/add-to-wishlist",
		`{"productId":"`+primitive.NewObjectID().Hex()+`"}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in wishlist")
}

func TestDeleteReviewForbidden(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
		Reviews:  &stubReviewService{deleteErr: models.ErrReviewForbidden},
	})

	body := `{"productId":"` + primitive.NewObjectID().Hex() + `","reviewId":"` + primitive.NewObjectID().Hex() + `"}`
	rec := postJSON(router, "/user/delete-review", body, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWriteReviewRequiresText(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	body := `{"productId":"` + primitive.NewObjectID().Hex() + `","rating":4}`
	rec := postJSON(router, "/user/write-review", body, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResetPasswordSameOldAndNew(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	rec := postJSON(router, "/user/reset-password",
		`{"oldPassword":"same","newPassword":"same"}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "can't be the same")
}

func TestAddAddressRequiresAllFields(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	principal := userPrincipal()
	router := newTestRouter(Deps{
		Tokens:   tokens,
		Resolver: &stubPrincipalResolver{principal: principal},
	})

	rec := postJSON(router, "/user/add-address",
		`{"streetAddress":"1 Main St","city":"Austin"}`, bearerFor(t, tokens, principal))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
