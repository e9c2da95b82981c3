package v1

import (
	"context"
	"time"

	"stylefeed-backend/internal/domain"
)

type stubProductRepo struct {
	listFn           func(filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]domain.ProductSummary, int64, error)
	getByIDFn        func(id int64) (*domain.ProductSummary, error)
	incrementClickFn func(id int64) (string, error)
	createFn         func(p *domain.Product) error
	deleteFn         func(id int64) error
}

func (s *stubProductRepo) List(_ context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]domain.ProductSummary, int64, error) {
	if s.listFn != nil {
		return s.listFn(filter, sort, limit, offset)
	}
	return []domain.ProductSummary{}, 0, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id int64) (*domain.ProductSummary, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetByURL(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if s.createFn != nil {
		return s.createFn(p)
	}
	return nil
}

func (s *stubProductRepo) Update(_ context.Context, _ *domain.Product) error { return nil }

func (s *stubProductRepo) Delete(_ context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	return nil
}

func (s *stubProductRepo) IncrementClick(_ context.Context, id int64) (string, error) {
	if s.incrementClickFn != nil {
		return s.incrementClickFn(id)
	}
	return "", domain.ErrNotFound
}

type stubLikeRepo struct {
	pairs map[[2]int64]bool
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{pairs: map[[2]int64]bool{}}
}

func (s *stubLikeRepo) Insert(_ context.Context, userID, productID int64) (bool, error) {
	key := [2]int64{userID, productID}
	if s.pairs[key] {
		return false, nil
	}
	s.pairs[key] = true
	return true, nil
}

func (s *stubLikeRepo) Delete(_ context.Context, userID, productID int64) (bool, error) {
	key := [2]int64{userID, productID}
	if !s.pairs[key] {
		return false, nil
	}
	delete(s.pairs, key)
	return true, nil
}

func (s *stubLikeRepo) Exists(_ context.Context, userID, productID int64) (bool, error) {
	return s.pairs[[2]int64{userID, productID}], nil
}

func (s *stubLikeRepo) CountForProduct(_ context.Context, productID int64) (int64, error) {
	var n int64
	for key := range s.pairs {
		if key[1] == productID {
			n++
		}
	}
	return n, nil
}

func (s *stubLikeRepo) ListByUser(_ context.Context, userID int64) ([]domain.ProductSummary, error) {
	items := []domain.ProductSummary{}
	for key := range s.pairs {
		if key[0] == userID {
			items = append(items, domain.ProductSummary{ID: key[1]})
		}
	}
	return items, nil
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (s *stubCategoryRepo) List(_ context.Context, _ *domain.Gender) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryRepo) SubCategories(_ context.Context, _ int64) ([]domain.SubCategory, error) {
	return []domain.SubCategory{}, nil
}

func (s *stubCategoryRepo) ListSubCategories(_ context.Context) ([]domain.SubCategory, error) {
	return []domain.SubCategory{}, nil
}

type stubBrandRepo struct {
	brands []domain.BrandSummary
}

func (s *stubBrandRepo) List(_ context.Context) ([]domain.BrandSummary, error) {
	return s.brands, nil
}

func (s *stubBrandRepo) GetByID(_ context.Context, id int64) (*domain.BrandSummary, error) {
	for _, b := range s.brands {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubBrandRepo) Trending(_ context.Context, _ int) ([]domain.BrandSummary, error) {
	return s.brands, nil
}

func (s *stubBrandRepo) Search(_ context.Context, _ string, _, _ int) ([]domain.BrandSummary, int64, error) {
	return s.brands, int64(len(s.brands)), nil
}

func (s *stubBrandRepo) GetOrCreateByName(_ context.Context, name string, _ *string) (*domain.Brand, error) {
	return &domain.Brand{ID: 1, Name: name}, nil
}

// stubUserRepo is a one-map user table for auth handler tests.
type stubUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[int64]*domain.User{}, nextID: 1}
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = s.nextID
	s.nextID++
	clone := *u
	s.byID[u.ID] = &clone
	return nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserRepo) SetResetToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (s *stubUserRepo) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.ResetToken != nil && *u.ResetToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

type stubMailer struct {
	tokens []string
}

func (s *stubMailer) SendPasswordReset(_ context.Context, _, _, token string) error {
	s.tokens = append(s.tokens, token)
	return nil
}
