package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yibyerm/internal/models"
)

type productBody struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock" binding:"min=0"`
}

func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.db.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, products)
}

func (s *Server) handleGetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := s.db.GetProduct(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Stock:       body.Stock,
	}
	if err := s.db.CreateProduct(c.Request.Context(), product); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		ID:          id,
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Stock:       body.Stock,
	}
	if err := s.db.UpdateProduct(c.Request.Context(), product); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := s.db.DeleteProduct(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
