package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

type ProductController struct {
	catalog CatalogService
	logger  *zap.Logger
}

func NewProductController(svc CatalogService, logger *zap.Logger) *ProductController {
	return &ProductController{catalog: svc, logger: logger}
}

// ListProducts handles GET /products?category=&skip=&limit=.
func (pc *ProductController) ListProducts(c *gin.Context) {
	skip, limit, err := parsePaging(c)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}

	products, err := pc.catalog.ListProducts(c.Request.Context(), c.Query("category"), skip, limit)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.Respond(c, pc.logger, bindError(err))
		return
	}

	product, err := pc.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.Respond(c, pc.logger, bindError(err))
		return
	}

	product, err := pc.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// PresignImage handles POST /products/images/presign.
func (pc *ProductController) PresignImage(c *gin.Context) {
	var req models.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, pc.logger, bindError(err))
		return
	}

	resp, err := pc.catalog.PresignImageUpload(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
