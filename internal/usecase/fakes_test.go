package usecase

import (
	"context"
	"time"

	"stylefeed-backend/internal/domain"
)

// listCall records one invocation of ProductRepository.List.
type listCall struct {
	filter domain.ProductFilter
	sort   domain.ProductSort
	limit  int
	offset int
}

type fakeProductRepo struct {
	listFn           func(call listCall) ([]domain.ProductSummary, int64, error)
	getByIDFn        func(id int64) (*domain.ProductSummary, error)
	getByURLFn       func(url string) (*domain.Product, error)
	createFn         func(p *domain.Product) error
	updateFn         func(p *domain.Product) error
	deleteFn         func(id int64) error
	incrementClickFn func(id int64) (string, error)

	listCalls []listCall
	created   []*domain.Product
	updated   []*domain.Product
}

func (f *fakeProductRepo) List(_ context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]domain.ProductSummary, int64, error) {
	call := listCall{filter: filter, sort: sort, limit: limit, offset: offset}
	f.listCalls = append(f.listCalls, call)
	if f.listFn != nil {
		return f.listFn(call)
	}
	return []domain.ProductSummary{}, 0, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.ProductSummary, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) GetByURL(_ context.Context, url string) (*domain.Product, error) {
	if f.getByURLFn != nil {
		return f.getByURLFn(url)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.created = append(f.created, p)
	if f.createFn != nil {
		return f.createFn(p)
	}
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	f.updated = append(f.updated, p)
	if f.updateFn != nil {
		return f.updateFn(p)
	}
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func (f *fakeProductRepo) IncrementClick(_ context.Context, id int64) (string, error) {
	if f.incrementClickFn != nil {
		return f.incrementClickFn(id)
	}
	return "", domain.ErrNotFound
}

// fakeLikeRepo keeps like pairs in memory so toggles behave like the real
// table with its unique constraint.
type fakeLikeRepo struct {
	pairs map[[2]int64]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{pairs: map[[2]int64]bool{}}
}

func (f *fakeLikeRepo) Insert(_ context.Context, userID, productID int64) (bool, error) {
	key := [2]int64{userID, productID}
	if f.pairs[key] {
		return false, nil
	}
	f.pairs[key] = true
	return true, nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, userID, productID int64) (bool, error) {
	key := [2]int64{userID, productID}
	if !f.pairs[key] {
		return false, nil
	}
	delete(f.pairs, key)
	return true, nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, userID, productID int64) (bool, error) {
	return f.pairs[[2]int64{userID, productID}], nil
}

func (f *fakeLikeRepo) CountForProduct(_ context.Context, productID int64) (int64, error) {
	var n int64
	for key := range f.pairs {
		if key[1] == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) ListByUser(_ context.Context, userID int64) ([]domain.ProductSummary, error) {
	items := []domain.ProductSummary{}
	for key := range f.pairs {
		if key[0] == userID {
			items = append(items, domain.ProductSummary{ID: key[1]})
		}
	}
	return items, nil
}

type fakeBrandRepo struct {
	brands  map[int64]domain.BrandSummary
	nextID  int64
	created []string
}

func newFakeBrandRepo(brands ...domain.BrandSummary) *fakeBrandRepo {
	f := &fakeBrandRepo{brands: map[int64]domain.BrandSummary{}, nextID: 1}
	for _, b := range brands {
		f.brands[b.ID] = b
		if b.ID >= f.nextID {
			f.nextID = b.ID + 1
		}
	}
	return f
}

func (f *fakeBrandRepo) List(_ context.Context) ([]domain.BrandSummary, error) {
	out := []domain.BrandSummary{}
	for _, b := range f.brands {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBrandRepo) GetByID(_ context.Context, id int64) (*domain.BrandSummary, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBrandRepo) Trending(_ context.Context, limit int) ([]domain.BrandSummary, error) {
	out, _ := f.List(context.Background())
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBrandRepo) Search(_ context.Context, query string, limit, offset int) ([]domain.BrandSummary, int64, error) {
	out, _ := f.List(context.Background())
	return out, int64(len(out)), nil
}

func (f *fakeBrandRepo) GetOrCreateByName(_ context.Context, name string, _ *string) (*domain.Brand, error) {
	for id, b := range f.brands {
		if b.Name == name {
			return &domain.Brand{ID: id, Name: b.Name}, nil
		}
	}
	id := f.nextID
	f.nextID++
	f.brands[id] = domain.BrandSummary{ID: id, Name: name}
	f.created = append(f.created, name)
	return &domain.Brand{ID: id, Name: name}, nil
}

type fakeCategoryRepo struct {
	categories map[int64]domain.Category
	subs       []domain.SubCategory
}

func (f *fakeCategoryRepo) List(_ context.Context, gender *domain.Gender) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range f.categories {
		if gender == nil || c.Gender == *gender || c.Gender == domain.GenderUnisex {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategoryRepo) SubCategories(_ context.Context, categoryID int64) ([]domain.SubCategory, error) {
	out := []domain.SubCategory{}
	for _, s := range f.subs {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListSubCategories(_ context.Context) ([]domain.SubCategory, error) {
	return f.subs, nil
}

// fakeUserRepo is an in-memory user table keyed by email and id.
type fakeUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	clone := *u
	f.byID[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(time.Now()) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

type fakeMailer struct {
	sent []string // reset tokens handed to the mailer
	err  error
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, name, token string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, token)
	return nil
}

type fakeFetcher struct {
	publicFn func(storeURL string) ([]domain.ScrapedProduct, error)
	adminFn  func(storeURL, accessToken string) ([]domain.ScrapedProduct, error)
}

func (f *fakeFetcher) FetchPublic(_ context.Context, storeURL string) ([]domain.ScrapedProduct, error) {
	return f.publicFn(storeURL)
}

func (f *fakeFetcher) FetchAdmin(_ context.Context, storeURL, accessToken string) ([]domain.ScrapedProduct, error) {
	return f.adminFn(storeURL, accessToken)
}

// fakeTx runs the function directly; rollback semantics are the real
// transaction manager's concern.
type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeStatsRepo struct {
	categoryCalls int
	colorCalls    int
	sizeCalls     int
	summaryCalls  int
}

func (f *fakeStatsRepo) TrendingCategories(_ context.Context, _ *domain.Gender, limit int) ([]domain.CategoryTrend, error) {
	f.categoryCalls++
	return []domain.CategoryTrend{{CategoryID: 1, CategoryName: "Dresses", TotalClicks: 42}}, nil
}

func (f *fakeStatsRepo) TrendingColors(_ context.Context, _ domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	f.colorCalls++
	return []domain.AttributeTrend{{Value: "Black", ProductCount: 3, TotalClicks: 9}}, nil
}

func (f *fakeStatsRepo) TrendingSizes(_ context.Context, _ domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	f.sizeCalls++
	return []domain.AttributeTrend{{Value: "M", ProductCount: 5, TotalClicks: 11}}, nil
}

func (f *fakeStatsRepo) Summary(_ context.Context) (*domain.CatalogSummary, error) {
	f.summaryCalls++
	return &domain.CatalogSummary{TotalProducts: 100, TotalBrands: 10, TotalClicks: 500}, nil
}

type fakeReportRepo struct {
	summaries []domain.BrandReportRow
	products  map[int64][]domain.ProductSummary
}

func (f *fakeReportRepo) BrandSummaries(_ context.Context) ([]domain.BrandReportRow, error) {
	return f.summaries, nil
}

func (f *fakeReportRepo) BrandProducts(_ context.Context, brandID int64) ([]domain.ProductSummary, error) {
	return f.products[brandID], nil
}
