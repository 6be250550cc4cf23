package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthService(ctrl)
	controller := &Controller{Auth: mockAuth}

	router := gin.New()
	router.POST("/register", controller.Register)

	req := models.RegisterRequest{Email: "alice@example.com", Password: "password1"}

	tests := []struct {
		name           string
		body           any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "created",
			body: req,
			mockSetup: func() {
				mockAuth.EXPECT().Register(gomock.Any(), req).
					Return(models.User{ID: "u1", Email: req.Email, Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate",
			body: req,
			mockSetup: func() {
				mockAuth.EXPECT().Register(gomock.Any(), req).Return(models.User{}, auctionerrors.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{name: "bad_email", body: models.RegisterRequest{Email: "nope", Password: "password1"}, mockSetup: func() {}, expectedStatus: http.StatusBadRequest},
		{name: "short_password", body: models.RegisterRequest{Email: "a@b.co", Password: "short"}, mockSetup: func() {}, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			w := doJSON(t, router, http.MethodPost, "/register", tc.body, nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			if w.Code == http.StatusCreated {
				require.NotContains(t, w.Body.String(), "password")
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthService(ctrl)
	controller := &Controller{Auth: mockAuth}

	router := gin.New()
	router.POST("/login", controller.Login)

	good := models.LoginRequest{Email: "alice@example.com", Password: "password1"}
	expires := time.Now().Add(time.Hour).UTC()
	mockAuth.EXPECT().Login(gomock.Any(), good).
		Return(models.Session{Token: "v2.local.abc", UserID: "u1", Role: models.RoleUser, ExpiresAt: expires}, nil)

	w := doJSON(t, router, http.MethodPost, "/login", good, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "v2.local.abc", data["token"])
	require.Equal(t, "u1", data["user_id"])

	bad := models.LoginRequest{Email: "alice@example.com", Password: "wrong"}
	mockAuth.EXPECT().Login(gomock.Any(), bad).Return(models.Session{}, auctionerrors.ErrInvalidCredentials)
	w = doJSON(t, router, http.MethodPost, "/login", bad, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid credentials", decode(t, w)["message"])
}

func TestLogoutAndProfileHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthService(ctrl)
	controller := &Controller{Auth: mockAuth}

	router := gin.New()
	router.POST("/logout", asUser("u1", models.RoleUser), controller.Logout)
	router.GET("/users/me", asUser("u1", models.RoleUser), controller.GetProfile)

	mockAuth.EXPECT().Logout(gomock.Any(), models.Claims{TokenID: "tok-u1", UserID: "u1", Role: models.RoleUser}).Return(nil)
	w := doJSON(t, router, http.MethodPost, "/logout", nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	mockAuth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	w = doJSON(t, router, http.MethodPost, "/logout", nil, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	mockAuth.EXPECT().Profile(gomock.Any(), "u1").Return(models.User{ID: "u1", Email: "alice@example.com", PasswordHash: "secret-hash"}, nil)
	w = doJSON(t, router, http.MethodGet, "/users/me", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "secret-hash")
}
