package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"stockroom/internal/auth"
	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, q model.ListQuery) (*model.ProductPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

func (m *MockProductService) Stats(ctx context.Context, search string) (*model.ProductStats, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductStats), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input service.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, input service.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) AttachImage(ctx context.Context, id uuid.UUID, upload service.ImageUpload) (string, error) {
	args := m.Called(ctx, id, upload)
	return args.String(0), args.Error(1)
}

type stubUserRepo struct {
	username string
	hash     string
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if username != s.username {
		return nil, nil
	}
	return &model.User{ID: uuid.New(), Username: s.username, PasswordHash: s.hash}, nil
}

func (s *stubUserRepo) Upsert(ctx context.Context, username, passwordHash string) error {
	s.username = username
	s.hash = passwordHash
	return nil
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func newTestServer(t *testing.T, svc service.ProductService, users *stubUserRepo) *chi.Mux {
	t.Helper()
	if users == nil {
		users = &stubUserRepo{}
	}
	manager := auth.NewManager(users, "test-secret", time.Hour, zerolog.Nop())
	handler, err := NewHandler(svc, manager, "UZS", zerolog.Nop())
	require.NoError(t, err)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, passthrough)
	return r
}

func testProduct(name string) *model.Product {
	return &model.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromFloat(45.50),
		CreatedAt: time.Now(),
	}
}

func singlePage(products ...*model.Product) *model.ProductPage {
	items := make([]model.Product, 0, len(products))
	for _, p := range products {
		items = append(items, *p)
	}
	return &model.ProductPage{Items: items, Total: len(items), Page: 1, HasNext: false}
}

func TestListPage(t *testing.T) {
	svc := new(MockProductService)
	product := testProduct("Choy qora")
	svc.On("List", mock.Anything, mock.Anything).Return(singlePage(product), nil)
	svc.On("Stats", mock.Anything, "").Return(&model.ProductStats{Total: 1, Latest: product}, nil)

	r := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "products-table")
	assert.Contains(t, rec.Body.String(), "Choy qora")
	assert.Contains(t, rec.Body.String(), "Mahsulotlar")
	svc.AssertExpectations(t)
}

func TestTablePartialDispatch(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		hasNext     bool
		wantBody    string
		notWantBody string
		wantStop    bool
	}{
		{
			name:        "plain reload renders the table fragment",
			target:      "/table/",
			wantBody:    "product-rows",
			notWantBody: "hx-swap-oob",
		},
		{
			name:        "search renders the out-of-band fragment",
			target:      "/table/?q=choy",
			wantBody:    "hx-swap-oob",
			notWantBody: "<!DOCTYPE",
		},
		{
			name:        "sort change renders the out-of-band fragment",
			target:      "/table/?sort=price",
			wantBody:    "hx-swap-oob",
			notWantBody: "<!DOCTYPE",
		},
		{
			name:        "pagination renders bare rows",
			target:      "/table/?page=2&q=choy",
			hasNext:     true,
			wantBody:    "<tr",
			notWantBody: "<table",
		},
		{
			name:     "card pagination renders bare cards",
			target:   "/table/?page=2&view=cards",
			hasNext:  true,
			wantBody: "Choy qora",
		},
		{
			name:     "last page stops the infinite scroll",
			target:   "/table/?page=4",
			hasNext:  false,
			wantStop: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			page := singlePage(testProduct("Choy qora"))
			page.HasNext = tt.hasNext
			svc.On("List", mock.Anything, mock.Anything).Return(page, nil)

			r := newTestServer(t, svc, nil)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set(HeaderHXRequest, "true")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.notWantBody != "" {
				assert.NotContains(t, rec.Body.String(), tt.notWantBody)
			}
			trigger := rec.Header().Get(HeaderTrigger)
			if tt.wantStop {
				assert.Contains(t, trigger, EventStopInfiniteScroll)
			} else if tt.hasNext {
				assert.Empty(t, trigger)
			}
		})
	}
}

func TestCreateHTMXSuccess(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(input service.ProductInput) bool {
		return input.Name == "Guruch" && input.Price.Equal(decimal.NewFromFloat(12.50))
	})).Return(testProduct("Guruch"), nil)

	r := newTestServer(t, svc, nil)

	form := url.Values{"name": {"Guruch"}, "price": {"12.50"}}
	req := httptest.NewRequest(http.MethodPost, "/new/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(HeaderHXRequest, "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	trigger := rec.Header().Get(HeaderTrigger)
	assert.Contains(t, trigger, EventReloadProducts)
	assert.Contains(t, trigger, EventShowToast)
	assert.Contains(t, trigger, "Mahsulot saqlandi")
	assert.Contains(t, rec.Header().Get(HeaderTriggerAfterSettle), EventCloseModal)
	svc.AssertExpectations(t)
}

func TestCreateHTMXInvalid(t *testing.T) {
	svc := new(MockProductService)

	r := newTestServer(t, svc, nil)

	form := url.Values{"name": {""}, "price": {"abc"}}
	req := httptest.NewRequest(http.MethodPost, "/new/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(HeaderHXRequest, "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get(HeaderTrigger), EventShowToast)
	assert.Contains(t, rec.Header().Get(HeaderTrigger), "Xatolik yuz berdi")
	assert.Contains(t, rec.Body.String(), "Mahsulot nomini kiriting")
	assert.Contains(t, rec.Body.String(), "Narxni to‘g‘ri kiriting")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNonHTMXRedirects(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Create", mock.Anything, mock.Anything).Return(testProduct("Guruch"), nil)

	r := newTestServer(t, svc, nil)

	form := url.Values{"name": {"Guruch"}, "price": {"12.50"}}
	req := httptest.NewRequest(http.MethodPost, "/new/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestEditHTMXSuccess(t *testing.T) {
	svc := new(MockProductService)
	product := testProduct("Eski nom")
	svc.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	svc.On("Update", mock.Anything, product.ID, mock.Anything).Return(product, nil)

	r := newTestServer(t, svc, nil)

	form := url.Values{"name": {"Yangi nom"}, "price": {"99.99"}}
	req := httptest.NewRequest(http.MethodPost, "/"+product.ID.String()+"/edit/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(HeaderHXRequest, "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get(HeaderTrigger), EventReloadProducts)
	svc.AssertExpectations(t)
}

func TestEditFormUnknownProduct(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetByID", mock.Anything, mock.Anything).Return(nil, model.ErrProductNotFound)

	r := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/"+uuid.NewString()+"/edit/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHTMX(t *testing.T) {
	svc := new(MockProductService)
	product := testProduct("Olma")
	svc.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	svc.On("Delete", mock.Anything, product.ID).Return(nil)

	r := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/"+product.ID.String()+"/delete/", nil)
	req.Header.Set(HeaderHXRequest, "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	trigger := rec.Header().Get(HeaderTrigger)
	assert.Contains(t, trigger, EventReloadProducts)
	assert.Contains(t, trigger, "Mahsulot o‘chirildi")
	assert.Contains(t, rec.Header().Get(HeaderTriggerAfterSettle), EventCloseModal)
	svc.AssertExpectations(t)
}

func TestDeleteConfirmRendersName(t *testing.T) {
	svc := new(MockProductService)
	product := testProduct("Olma")
	svc.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	r := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/"+product.ID.String()+"/delete/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Olma")
}

func TestLoginFlow(t *testing.T) {
	hash, err := auth.HashPassword("sirli-parol")
	require.NoError(t, err)
	users := &stubUserRepo{username: "admin", hash: hash}

	svc := new(MockProductService)
	r := newTestServer(t, svc, users)

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		form := url.Values{"username": {"admin"}, "password": {"notogri"}}
		req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), model.ErrInvalidCredentials.Message)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		form := url.Values{"username": {"admin"}, "password": {"sirli-parol"}, "next": {"/table/"}}
		req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/table/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.SessionCookie, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("external next target is replaced with the list page", func(t *testing.T) {
		form := url.Values{"username": {"admin"}, "password": {"sirli-parol"}, "next": {"https://evil.example"}}
		req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := new(MockProductService)
	r := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
