package lending_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoorthi225f2/Library/internal/catalog"
	"github.com/spoorthi225f2/Library/internal/lending"
	"github.com/spoorthi225f2/Library/internal/platform/auth"
)

var testSecret = []byte("test_secret")

type stubLending struct {
	borrowErr error
	returnErr error
	record    *lending.BorrowRecord
	gotUserID uuid.UUID
	gotBookID uuid.UUID
}

func (s *stubLending) Borrow(_ context.Context, userID, bookID uuid.UUID) (*lending.BorrowRecord, error) {
	s.gotUserID, s.gotBookID = userID, bookID
	if s.borrowErr != nil {
		return nil, s.borrowErr
	}
	return s.record, nil
}

func (s *stubLending) Return(_ context.Context, userID, bookID uuid.UUID) error {
	s.gotUserID, s.gotBookID = userID, bookID
	return s.returnErr
}

func (s *stubLending) ActiveFor(context.Context, uuid.UUID) ([]*lending.BorrowedBook, error) {
	return []*lending.BorrowedBook{}, nil
}

func (s *stubLending) HistoryFor(context.Context, uuid.UUID) ([]*lending.BorrowedBook, error) {
	return []*lending.BorrowedBook{}, nil
}

type stubCatalog struct{}

func (stubCatalog) Create(context.Context, string, string) (*catalog.Book, error) { return nil, nil }
func (stubCatalog) Get(context.Context, uuid.UUID) (*catalog.Book, error)         { return nil, nil }
func (stubCatalog) Update(context.Context, uuid.UUID, string, string) error       { return nil }
func (stubCatalog) Delete(context.Context, uuid.UUID) error                       { return nil }
func (stubCatalog) ListAll(context.Context) ([]*catalog.Book, error)              { return nil, nil }
func (stubCatalog) ListAvailable(context.Context) ([]*catalog.Book, error) {
	return []*catalog.Book{}, nil
}

func newTestRouter(svc lending.Service) http.Handler {
	handler := lending.NewHandler(svc, stubCatalog{}, slog.Default())
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(testSecret))
		r.Post("/member/borrow/{bookID}", handler.HandleBorrow)
		r.Post("/member/return/{bookID}", handler.HandleReturn)
		r.Get("/member/dashboard", handler.HandleDashboard)
	})
	return r
}

func memberToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, auth.Identity{UserID: userID, Username: "meera", Role: "member"}, time.Now())
	require.NoError(t, err)
	return token
}

func TestHandleBorrow(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &stubLending{record: &lending.BorrowRecord{ID: uuid.New(), UserID: userID, BookID: bookID, BorrowedAt: time.Now()}}
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, userID, svc.gotUserID, "identity passed explicitly to the service")
		assert.Equal(t, bookID, svc.gotBookID)
	})

	t.Run("unavailable book maps to conflict", func(t *testing.T) {
		svc := &stubLending{borrowErr: lending.ErrBookUnavailable}
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown book maps to not found", func(t *testing.T) {
		svc := &stubLending{borrowErr: lending.ErrBookNotFound}
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid book id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/not-a-uuid", nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(&stubLending{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/"+bookID.String(), nil)
		rec := httptest.NewRecorder()

		newTestRouter(&stubLending{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin role is rejected", func(t *testing.T) {
		token, err := auth.IssueToken(testSecret, auth.Identity{UserID: userID, Username: "root", Role: "admin"}, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/member/borrow/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		newTestRouter(&stubLending{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandleReturn(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &stubLending{}
		req := httptest.NewRequest(http.MethodPost, "/member/return/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, svc.gotUserID)
	})

	t.Run("no active borrow maps to conflict", func(t *testing.T) {
		svc := &stubLending{returnErr: lending.ErrNoActiveBorrow}
		req := httptest.NewRequest(http.MethodPost, "/member/return/"+bookID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+memberToken(t, userID))
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
