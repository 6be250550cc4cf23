package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"auction-backend/auctionerrors"
	"auction-backend/models"
	"auction-backend/storage"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetProducts handles GET /products and returns every stored product.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	products, err := ctrl.Auctions.List(ctx)
	if err != nil {
		respondError(c, "GetProducts", err, nil)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.JSONResponse(c, http.StatusOK, products, "products retrieved successfully")
}

// GetCatalog handles GET /catalog: approved auctions that are still running.
func (ctrl *Controller) GetCatalog(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	products, err := ctrl.Auctions.ListOpen(ctx)
	if err != nil {
		respondError(c, "GetCatalog", err, nil)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.JSONResponse(c, http.StatusOK, products, "catalog retrieved successfully")
}

// GetProduct handles GET /products/:id
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	id := c.Param("id")
	product, err := ctrl.Auctions.Get(ctx, id)
	if err != nil {
		respondError(c, "GetProduct", err, map[string]any{"product_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, product, "product retrieved successfully")
}

// CreateProduct handles POST /products. The body is either JSON or a
// multipart form with an optional "image" file.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	in, image, err := bindProductInput(c)
	if err != nil {
		handleBindError(c, "CreateProduct", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	product, err := ctrl.Auctions.Create(ctx, in, image)
	if err != nil {
		respondError(c, "CreateProduct", err, map[string]any{"user_id": c.GetString(ContextUserID)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, product, "product created successfully")
	logSuccess("CreateProduct", "product created", map[string]any{
		"product_id": product.ID,
		"user_id":    c.GetString(ContextUserID),
	})
}

// UpdateProduct handles PUT /products/:id and replaces the whole record.
// The record carries the auction end and the bid history, which a form
// cannot express, so only JSON is accepted; a new image goes in image_base64.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		handleBindError(c, "UpdateProduct", errUpdateNotJSON)
		return
	}
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handleBindError(c, "UpdateProduct", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	product, err := ctrl.Auctions.Update(ctx, id, in, nil)
	if err != nil {
		respondError(c, "UpdateProduct", err, map[string]any{"product_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, product, "product updated successfully")
	logSuccess("UpdateProduct", "product updated", map[string]any{"product_id": id})
}

// SetApproval handles PATCH /products/:id/approval
func (ctrl *Controller) SetApproval(c *gin.Context) {
	id := c.Param("id")
	var req models.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "SetApproval", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	product, err := ctrl.Auctions.SetApproval(ctx, id, *req.Approved)
	if err != nil {
		respondError(c, "SetApproval", err, map[string]any{"product_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, product, "approval updated successfully")
	logSuccess("SetApproval", "approval updated", map[string]any{
		"product_id": id,
		"approved":   product.IsApproved,
	})
}

// DeleteProduct handles DELETE /products/:id
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	id := c.Param("id")
	if err := ctrl.Auctions.Delete(ctx, id); err != nil {
		respondError(c, "DeleteProduct", err, map[string]any{"product_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	logSuccess("DeleteProduct", "product deleted", map[string]any{"product_id": id})
}

// PlaceBid handles POST /products/:id/bids. The bidder is always the
// authenticated caller.
func (ctrl *Controller) PlaceBid(c *gin.Context) {
	id := c.Param("id")
	var req models.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "PlaceBid", err)
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	userID := c.GetString(ContextUserID)
	product, err := ctrl.Auctions.PlaceBid(ctx, id, userID, req.Amount)
	if err != nil {
		respondError(c, "PlaceBid", err, map[string]any{
			"product_id": id,
			"user_id":    userID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, product, "bid recorded successfully")
	logSuccess("PlaceBid", "bid recorded", map[string]any{
		"product_id": id,
		"user_id":    userID,
		"amount":     req.Amount,
	})
}

// GetMyBids handles GET /users/me/bids: auctions the caller is leading.
func (ctrl *Controller) GetMyBids(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	userID := c.GetString(ContextUserID)
	products, err := ctrl.Auctions.ListLeading(ctx, userID)
	if err != nil {
		respondError(c, "GetMyBids", err, map[string]any{"user_id": userID})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.JSONResponse(c, http.StatusOK, products, "leading bids retrieved successfully")
}

var errUpdateNotJSON = errors.New("product updates must be sent as JSON")

func bindProductInput(c *gin.Context) (models.ProductInput, *models.ImageUpload, error) {
	var in models.ProductInput
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&in); err != nil {
			return models.ProductInput{}, nil, err
		}
		return in, nil, nil
	}

	if err := c.ShouldBind(&in); err != nil {
		return models.ProductInput{}, nil, err
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return models.ProductInput{}, nil, err
	}
	if header.Size > storage.MaxImageSize {
		return models.ProductInput{}, nil, fmt.Errorf("%w: image exceeds %d bytes", auctionerrors.ErrInvalidProduct, storage.MaxImageSize)
	}

	f, err := header.Open()
	if err != nil {
		return models.ProductInput{}, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
	if err != nil {
		return models.ProductInput{}, nil, err
	}
	return in, &models.ImageUpload{Filename: header.Filename, Data: data}, nil
}
