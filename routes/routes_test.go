package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-backend/controllers"
	"auction-backend/models"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestSetup_RouteProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.SetLogOutput(io.Discard)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := controllers.NewMockAuctionService(ctrl)
	authSvc := controllers.NewMockAuthService(ctrl)
	router := Setup(&controllers.Controller{Auctions: auctions, Auth: authSvc}, "test", []string{"http://localhost:3000"})

	authSvc.EXPECT().Authenticate(gomock.Any(), "user-token").
		Return(models.Claims{UserID: "u1", Role: models.RoleUser}, nil).AnyTimes()
	auctions.EXPECT().List(gomock.Any()).Return([]models.Product{}, nil)
	auctions.EXPECT().ListOpen(gomock.Any()).Return([]models.Product{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "public_list", method: http.MethodGet, path: "/products", want: http.StatusOK},
		{name: "public_catalog", method: http.MethodGet, path: "/catalog", want: http.StatusOK},
		{name: "create_needs_token", method: http.MethodPost, path: "/products", want: http.StatusUnauthorized},
		{name: "bid_needs_token", method: http.MethodPost, path: "/products/p1/bids", want: http.StatusUnauthorized},
		{name: "profile_needs_token", method: http.MethodGet, path: "/users/me", want: http.StatusUnauthorized},
		{name: "delete_needs_admin", method: http.MethodDelete, path: "/products/p1", token: "user-token", want: http.StatusForbidden},
		{name: "update_needs_admin", method: http.MethodPut, path: "/products/p1", token: "user-token", want: http.StatusForbidden},
		{name: "approval_needs_admin", method: http.MethodPatch, path: "/products/p1/approval", token: "user-token", want: http.StatusForbidden},
		{name: "stats_needs_admin", method: http.MethodGet, path: "/stats", token: "user-token", want: http.StatusForbidden},
		{name: "unknown_route", method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tc.want, w.Code)
		})
	}
}
