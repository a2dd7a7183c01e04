package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"yibyerm/internal/auth"
	"yibyerm/internal/models"
	"yibyerm/internal/pdf"
	"yibyerm/internal/upload"
)

// Store is the persistence surface the handlers depend on.
// *storage.Storage implements it.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateDepartment(ctx context.Context, d *models.Department) error
	ListDepartments(ctx context.Context) ([]models.Department, error)
	UpdateDepartment(ctx context.Context, d *models.Department) error
	DeleteDepartment(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateRequest(ctx context.Context, req *models.BorrowRequest) error
	GetRequest(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error)
	ListRequests(ctx context.Context, userID *uuid.UUID, status models.RequestStatus) ([]models.BorrowRequest, error)
	TransitionRequest(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, reviewer *uuid.UUID, reviewNote string) error
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)

	SaveImage(ctx context.Context, img *models.AssetImage) error
	GetImage(ctx context.Context, id uuid.UUID) (*models.AssetImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type Server struct {
	cfg       *models.Config
	router    *gin.Engine
	db        Store
	producer  *kafka.Writer
	uploads   *upload.Service
	local     *upload.LocalStrategy // nil when the cloudinary strategy is active
	receipts  *pdf.Generator
	jwt       *auth.Manager
	maxUpload int64
	log       *zap.Logger
}

func NewServer(cfg *models.Config, db Store, producer *kafka.Writer, log *zap.Logger) (*Server, error) {
	strategy, err := upload.NewStrategy(cfg.Upload, cfg.StoragePath, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		router:    gin.Default(),
		db:        db,
		producer:  producer,
		uploads:   upload.NewService(cfg.Upload, strategy, log),
		receipts:  pdf.NewGenerator(cfg.PDF, log),
		jwt:       auth.NewManager(cfg.JWTSecret),
		maxUpload: cfg.Upload.WithDefaults().Validation.MaxFileSize,
		log:       log,
	}
	if local, ok := strategy.(*upload.LocalStrategy); ok {
		s.local = local
	}

	s.router.Static("/files", cfg.StoragePath)
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.router.Group("/api/v1")

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", s.jwt.RequireAuth())
	authed.GET("/auth/me", s.handleMe)

	authed.GET("/departments", s.handleListDepartments)
	authed.GET("/products", s.handleListProducts)
	authed.GET("/products/:id", s.handleGetProduct)

	authed.POST("/requests", s.handleCreateRequest)
	authed.GET("/requests", s.handleListRequests)
	authed.GET("/requests/:id", s.handleGetRequest)
	authed.POST("/requests/:id/cancel", s.handleCancelRequest)
	authed.GET("/requests/:id/receipt", s.handleRequestReceipt)

	authed.POST("/upload/product-image", s.handleUpload)
	authed.GET("/images/:id", s.handleGetImage)
	authed.POST("/pdf/from-image", s.handleImagePDF)

	admin := authed.Group("", auth.RequireAdmin())
	admin.POST("/departments", s.handleCreateDepartment)
	admin.PUT("/departments/:id", s.handleUpdateDepartment)
	admin.DELETE("/departments/:id", s.handleDeleteDepartment)
	admin.POST("/products", s.handleCreateProduct)
	admin.PUT("/products/:id", s.handleUpdateProduct)
	admin.DELETE("/products/:id", s.handleDeleteProduct)
	admin.POST("/requests/:id/approve", s.handleApproveRequest)
	admin.POST("/requests/:id/reject", s.handleRejectRequest)
	admin.POST("/requests/:id/issue", s.handleIssueRequest)
	admin.POST("/requests/:id/return", s.handleReturnRequest)
	admin.DELETE("/images/:id", s.handleDeleteImage)
	admin.GET("/admin/stats", s.handleAdminStats)
}

func (s *Server) Start() error {
	return s.router.Run(s.cfg.ServerAddr)
}

func (s *Server) Stop() {
	// No shutdown needed for gin
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failErr maps domain errors onto HTTP statuses; anything unknown is a
// 500 with a generic message.
func failErr(c *gin.Context, err error) {
	switch {
	case err == models.ErrNotFound:
		fail(c, http.StatusNotFound, err.Error())
	case err == models.ErrForbidden:
		fail(c, http.StatusForbidden, err.Error())
	case err == models.ErrDuplicate:
		fail(c, http.StatusConflict, err.Error())
	case err == models.ErrInvalidCredentials:
		fail(c, http.StatusUnauthorized, err.Error())
	case err == models.ErrInvalidStatus, err == models.ErrInsufficientStock:
		fail(c, http.StatusConflict, err.Error())
	case err == models.ErrRateLimited:
		fail(c, http.StatusTooManyRequests, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
