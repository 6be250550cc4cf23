package controllers

import (
	"net/http"

	"auction-backend/models"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// Register handles POST /register
func (ctrl *Controller) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "Register", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	user, err := ctrl.Auth.Register(ctx, req)
	if err != nil {
		respondError(c, "Register", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "registration successful")
	logSuccess("Register", "user registered", map[string]any{"user_id": user.ID})
}

// Login handles POST /login and returns a bearer token.
func (ctrl *Controller) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "Login", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	session, err := ctrl.Auth.Login(ctx, req)
	if err != nil {
		respondError(c, "Login", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusOK, session, "login successful")
	logSuccess("Login", "user logged in", map[string]any{"user_id": session.UserID})
}

// Logout handles POST /logout and revokes the token used for the request.
func (ctrl *Controller) Logout(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	claims := claimsFrom(c)
	if err := ctrl.Auth.Logout(ctx, claims); err != nil {
		respondError(c, "Logout", err, map[string]any{"user_id": claims.UserID})
		return
	}

	c.Status(http.StatusNoContent)
	logSuccess("Logout", "token revoked", map[string]any{"user_id": claims.UserID})
}

// GetProfile handles GET /users/me
func (ctrl *Controller) GetProfile(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	userID := c.GetString(ContextUserID)
	user, err := ctrl.Auth.Profile(ctx, userID)
	if err != nil {
		respondError(c, "GetProfile", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "profile retrieved successfully")
}
