package server

import (
	"context"

	"github.com/google/uuid"

	"yibyerm/internal/models"
)

// mockStore implements Store with overridable func fields; unset methods
// return zero values.
type mockStore struct {
	createUser     func(ctx context.Context, u *models.User) error
	getUserByEmail func(ctx context.Context, email string) (*models.User, error)
	getUser        func(ctx context.Context, id uuid.UUID) (*models.User, error)

	createDepartment func(ctx context.Context, d *models.Department) error
	listDepartments  func(ctx context.Context) ([]models.Department, error)
	updateDepartment func(ctx context.Context, d *models.Department) error
	deleteDepartment func(ctx context.Context, id uuid.UUID) error

	createProduct func(ctx context.Context, p *models.Product) error
	getProduct    func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	listProducts  func(ctx context.Context, category string) ([]models.Product, error)
	updateProduct func(ctx context.Context, p *models.Product) error
	deleteProduct func(ctx context.Context, id uuid.UUID) error

	createRequest     func(ctx context.Context, req *models.BorrowRequest) error
	getRequest        func(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error)
	listRequests      func(ctx context.Context, userID *uuid.UUID, status models.RequestStatus) ([]models.BorrowRequest, error)
	transitionRequest func(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, reviewer *uuid.UUID, reviewNote string) error
	getAdminStats     func(ctx context.Context) (*models.AdminStats, error)

	saveImage   func(ctx context.Context, img *models.AssetImage) error
	getImage    func(ctx context.Context, id uuid.UUID) (*models.AssetImage, error)
	deleteImage func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStore) CreateUser(ctx context.Context, u *models.User) error {
	if m.createUser != nil {
		return m.createUser(ctx, u)
	}
	return nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmail != nil {
		return m.getUserByEmail(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *mockStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.getUser != nil {
		return m.getUser(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockStore) CreateDepartment(ctx context.Context, d *models.Department) error {
	if m.createDepartment != nil {
		return m.createDepartment(ctx, d)
	}
	return nil
}

func (m *mockStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	if m.listDepartments != nil {
		return m.listDepartments(ctx)
	}
	return nil, nil
}

func (m *mockStore) UpdateDepartment(ctx context.Context, d *models.Department) error {
	if m.updateDepartment != nil {
		return m.updateDepartment(ctx, d)
	}
	return nil
}

func (m *mockStore) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if m.deleteDepartment != nil {
		return m.deleteDepartment(ctx, id)
	}
	return nil
}

func (m *mockStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if m.createProduct != nil {
		return m.createProduct(ctx, p)
	}
	return nil
}

func (m *mockStore) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.getProduct != nil {
		return m.getProduct(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockStore) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	if m.listProducts != nil {
		return m.listProducts(ctx, category)
	}
	return nil, nil
}

func (m *mockStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	if m.updateProduct != nil {
		return m.updateProduct(ctx, p)
	}
	return nil
}

func (m *mockStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.deleteProduct != nil {
		return m.deleteProduct(ctx, id)
	}
	return nil
}

func (m *mockStore) CreateRequest(ctx context.Context, req *models.BorrowRequest) error {
	if m.createRequest != nil {
		return m.createRequest(ctx, req)
	}
	return nil
}

func (m *mockStore) GetRequest(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error) {
	if m.getRequest != nil {
		return m.getRequest(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockStore) ListRequests(ctx context.Context, userID *uuid.UUID, status models.RequestStatus) ([]models.BorrowRequest, error) {
	if m.listRequests != nil {
		return m.listRequests(ctx, userID, status)
	}
	return nil, nil
}

func (m *mockStore) TransitionRequest(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, reviewer *uuid.UUID, reviewNote string) error {
	if m.transitionRequest != nil {
		return m.transitionRequest(ctx, id, from, to, reviewer, reviewNote)
	}
	return nil
}

func (m *mockStore) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	if m.getAdminStats != nil {
		return m.getAdminStats(ctx)
	}
	return &models.AdminStats{}, nil
}

func (m *mockStore) SaveImage(ctx context.Context, img *models.AssetImage) error {
	if m.saveImage != nil {
		return m.saveImage(ctx, img)
	}
	return nil
}

func (m *mockStore) GetImage(ctx context.Context, id uuid.UUID) (*models.AssetImage, error) {
	if m.getImage != nil {
		return m.getImage(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockStore) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if m.deleteImage != nil {
		return m.deleteImage(ctx, id)
	}
	return nil
}
