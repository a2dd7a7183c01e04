package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yibyerm/internal/auth"
	"yibyerm/internal/models"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		failErr(c, err)
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleUser,
		DepartmentID: req.DepartmentID,
	}
	if err := s.db.CreateUser(c.Request.Context(), user); err != nil {
		failErr(c, err)
		return
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, models.LoginResponse{User: user, AccessToken: token})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == models.ErrNotFound {
			failErr(c, models.ErrInvalidCredentials)
			return
		}
		failErr(c, err)
		return
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		failErr(c, models.ErrInvalidCredentials)
		return
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, models.LoginResponse{User: user, AccessToken: token})
}

func (s *Server) handleMe(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	user, err := s.db.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}
