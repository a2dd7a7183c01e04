package server

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yibyerm/internal/auth"
	"yibyerm/internal/models"
)

func (s *Server) handleCreateRequest(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	var body models.CreateBorrowRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	req := &models.BorrowRequest{
		ID:      uuid.New(),
		UserID:  claims.UserID,
		Status:  models.RequestPending,
		Purpose: body.Purpose,
		Note:    body.Note,
	}
	for _, item := range body.Items {
		req.Items = append(req.Items, models.RequestItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.db.CreateRequest(c.Request.Context(), req); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, req)
}

func (s *Server) handleListRequests(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	status := models.RequestStatus(c.Query("status"))

	var userID *uuid.UUID
	if claims.Role != models.RoleAdmin {
		userID = &claims.UserID
	}

	requests, err := s.db.ListRequests(c.Request.Context(), userID, status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, requests)
}

// loadRequestAuthorized fetches the request and enforces the owner-or-
// admin rule shared by the detail, cancel and receipt handlers.
func (s *Server) loadRequestAuthorized(c *gin.Context) *models.BorrowRequest {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request id")
		return nil
	}

	req, err := s.db.GetRequest(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return nil
	}

	claims := auth.ClaimsFrom(c)
	if claims.Role != models.RoleAdmin && req.UserID != claims.UserID {
		failErr(c, models.ErrForbidden)
		return nil
	}
	return req
}

func (s *Server) handleGetRequest(c *gin.Context) {
	req := s.loadRequestAuthorized(c)
	if req == nil {
		return
	}
	ok(c, http.StatusOK, req)
}

func (s *Server) handleCancelRequest(c *gin.Context) {
	req := s.loadRequestAuthorized(c)
	if req == nil {
		return
	}

	err := s.db.TransitionRequest(c.Request.Context(), req.ID,
		[]models.RequestStatus{models.RequestPending}, models.RequestCancelled, nil, "")
	if err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) reviewRequest(c *gin.Context, to models.RequestStatus, from ...models.RequestStatus) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request id")
		return
	}

	var body models.ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	var reviewer *uuid.UUID
	if to == models.RequestApproved || to == models.RequestRejected {
		claims := auth.ClaimsFrom(c)
		reviewer = &claims.UserID
	}

	if err := s.db.TransitionRequest(c.Request.Context(), id, from, to, reviewer, body.Note); err != nil {
		failErr(c, err)
		return
	}

	req, err := s.db.GetRequest(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, req)
}

func (s *Server) handleApproveRequest(c *gin.Context) {
	s.reviewRequest(c, models.RequestApproved, models.RequestPending)
}

func (s *Server) handleRejectRequest(c *gin.Context) {
	s.reviewRequest(c, models.RequestRejected, models.RequestPending)
}

func (s *Server) handleIssueRequest(c *gin.Context) {
	s.reviewRequest(c, models.RequestIssued, models.RequestApproved)
}

func (s *Server) handleReturnRequest(c *gin.Context) {
	s.reviewRequest(c, models.RequestCompleted, models.RequestApproved, models.RequestIssued)
}

func (s *Server) handleRequestReceipt(c *gin.Context) {
	req := s.loadRequestAuthorized(c)
	if req == nil {
		return
	}

	data, filename, err := s.receipts.GenerateRequestReceipt(req, nil)
	if err != nil {
		failErr(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.db.GetAdminStats(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}
