package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
)

type stubUserService struct {
	createFn  func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	getFn     func(ctx context.Context, email string) (*domain.User, error)
	getByUser func(ctx context.Context, username string) (*domain.User, error)
	listFn    func(ctx context.Context) ([]*domain.User, error)
	recordsFn func(ctx context.Context) ([]ports.UserRecord, error)
	exportFn  func(ctx context.Context) ([]byte, error)
	updateFn  func(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error)
	deleteFn  func(ctx context.Context, email string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}
func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getFn(ctx, email)
}
func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByUser(ctx, username)
}
func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}
func (s *stubUserService) Records(ctx context.Context) ([]ports.UserRecord, error) {
	return s.recordsFn(ctx)
}
func (s *stubUserService) ExportCSV(ctx context.Context) ([]byte, error) {
	return s.exportFn(ctx)
}
func (s *stubUserService) UpdateByEmail(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error) {
	return s.updateFn(ctx, email, fields)
}
func (s *stubUserService) DeleteByEmail(ctx context.Context, email string) error {
	return s.deleteFn(ctx, email)
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "65f1c0ffee",
		Username:     "alice",
		FirstName:    "Alice",
		LastName:     "Smith",
		Gender:       domain.GenderFemale,
		EmailAddress: "alice@college.edu",
		PhoneNumber:  "555-0100",
		Roles:        []domain.Role{domain.RoleStudent},
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Username != "alice" || in.Gender != domain.GenderFemale {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"username":"alice","password":"secret","first_name":"Alice","last_name":"Smith","gender":"female","email_address":"alice@college.edu","phone_number":"555-0100","roles":["student"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/create-user", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	body := `{"username":"alice","password":"secret","first_name":"Alice","last_name":"Smith","gender":"female","phone_number":"555-0100","roles":["student"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/create-user", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Create(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_GetByEmail_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		getFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/read-user/:email_address")
	c.SetParamNames("email_address")
	c.SetParamValues("ghost@college.edu")

	_ = handler.GetByEmail(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{sampleUser()}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/read-all-users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_ExportCSV(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		exportFn: func(ctx context.Context) ([]byte, error) {
			return []byte("_id,username\n1,alice\n"), nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users-csv", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ExportCSV(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "users.csv") {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
}

func TestUserHandler_Update_PartialFields(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error) {
			if email != "alice@college.edu" {
				t.Fatalf("unexpected email: %q", email)
			}
			if fields.PhoneNumber == nil || *fields.PhoneNumber != "555-0199" {
				t.Fatalf("phone field not carried: %+v", fields)
			}
			if fields.FirstName != nil {
				t.Fatalf("absent field should stay nil")
			}
			u := sampleUser()
			u.PhoneNumber = "555-0199"
			return u, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"phone_number":"555-0199"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/update-user/:email_address")
	c.SetParamNames("email_address")
	c.SetParamValues("alice@college.edu")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"first_name":"X"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/update-user/:email_address")
	c.SetParamNames("email_address")
	c.SetParamValues("ghost@college.edu")

	_ = handler.Update(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, email string) error {
			deleted = email
			return nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/delete-user/:email_address")
	c.SetParamNames("email_address")
	c.SetParamValues("alice@college.edu")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "alice@college.edu" {
		t.Fatalf("unexpected email: %q", deleted)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "user deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, email string) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/delete-user/:email_address")
	c.SetParamNames("email_address")
	c.SetParamValues("ghost@college.edu")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
