package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yibyerm/internal/models"
)

type departmentBody struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Faculty string `json:"faculty"`
}

func (s *Server) handleListDepartments(c *gin.Context) {
	deps, err := s.db.ListDepartments(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, deps)
}

func (s *Server) handleCreateDepartment(c *gin.Context) {
	var body departmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	dep := &models.Department{
		ID:      uuid.New(),
		Code:    body.Code,
		Name:    body.Name,
		Faculty: body.Faculty,
	}
	if err := s.db.CreateDepartment(c.Request.Context(), dep); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, dep)
}

func (s *Server) handleUpdateDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid department id")
		return
	}

	var body departmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	dep := &models.Department{ID: id, Code: body.Code, Name: body.Name, Faculty: body.Faculty}
	if err := s.db.UpdateDepartment(c.Request.Context(), dep); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, dep)
}

func (s *Server) handleDeleteDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid department id")
		return
	}
	if err := s.db.DeleteDepartment(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
