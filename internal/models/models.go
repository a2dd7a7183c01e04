package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Role         Role       `json:"role" db:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty" db:"department_id"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type Department struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Faculty   string    `json:"faculty" db:"faculty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestIssued    RequestStatus = "issued"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

type BorrowRequest struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	RequestNumber string        `json:"request_number" db:"request_number"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	Status        RequestStatus `json:"status" db:"status"`
	Purpose       string        `json:"purpose" db:"purpose"`
	Note          string        `json:"note,omitempty" db:"note"`
	ReviewNote    string        `json:"review_note,omitempty" db:"review_note"`
	ApprovedBy    *uuid.UUID    `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty" db:"approved_at"`
	ReturnedAt    *time.Time    `json:"returned_at,omitempty" db:"returned_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`

	Items []RequestItem `json:"items"`

	// Denormalized for display and the receipt; filled on read.
	UserName       string  `json:"user_name,omitempty"`
	UserEmail      string  `json:"user_email,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	ApproverName   *string `json:"approver_name,omitempty"`
}

type RequestItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RequestID uuid.UUID `json:"request_id" db:"request_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	// Product fields are snapshotted so the receipt survives later edits.
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Quantity int    `json:"quantity" db:"quantity"`
}

// AssetImage tracks an uploaded product image through post-processing.
type AssetImage struct {
	ID              uuid.UUID `db:"id"`
	Status          string    `db:"status"` // pending, processing, done, error
	OriginalPath    string    `db:"original_path"`
	ThumbnailPath   string    `db:"thumbnail_path"`
	WatermarkedPath string    `db:"watermarked_path"`
	Width           int       `db:"width"`
	Height          int       `db:"height"`
	// Individual processing status
	ThumbnailStatus string `db:"thumbnail_status"` // pending, processing, done, error
	WatermarkStatus string `db:"watermark_status"` // pending, processing, done, error
}

// UploadResult is the terminal value of a successful upload, identical in
// shape for both storage strategies.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

// UploadProgress is a transient snapshot emitted while an upload is in
// flight.
type UploadProgress struct {
	Loaded     int64   `json:"loaded"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

type RegisterRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=8"`
	Name         string     `json:"name" binding:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

type CreateRequestItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateBorrowRequest struct {
	Purpose string              `json:"purpose" binding:"required"`
	Note    string              `json:"note"`
	Items   []CreateRequestItem `json:"items" binding:"required,min=1,dive"`
}

type ReviewRequest struct {
	Note string `json:"note"`
}

type AdminStats struct {
	TotalUsers     int            `json:"total_users"`
	TotalProducts  int            `json:"total_products"`
	TotalRequests  int            `json:"total_requests"`
	RequestsByStat map[string]int `json:"requests_by_status"`
}
