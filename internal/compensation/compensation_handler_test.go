package compensation_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/compensation"
	compensationerrors "go-payroll/internal/compensation/errors"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCompensationService struct {
	createFn  func(ctx context.Context, companyID, actorID string, req compensation.CreateProfileRequest) (compensation.ProfileResponse, error)
	listFn    func(ctx context.Context, companyID string) ([]compensation.ProfileResponse, error)
	historyFn func(ctx context.Context, companyID, employeeID string) ([]compensation.ProfileResponse, error)
	deleteFn  func(ctx context.Context, companyID, actorID, id string) error
}

func (f *fakeCompensationService) Create(ctx context.Context, companyID, actorID string, req compensation.CreateProfileRequest) (compensation.ProfileResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}
func (f *fakeCompensationService) List(ctx context.Context, companyID string) ([]compensation.ProfileResponse, error) {
	return f.listFn(ctx, companyID)
}
func (f *fakeCompensationService) History(ctx context.Context, companyID, employeeID string) ([]compensation.ProfileResponse, error) {
	return f.historyFn(ctx, companyID, employeeID)
}
func (f *fakeCompensationService) Delete(ctx context.Context, companyID, actorID, id string) error {
	return f.deleteFn(ctx, companyID, actorID, id)
}
func (f *fakeCompensationService) ResolveEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*compensation.Profile, error) {
	return nil, nil
}

func withIdentity(id contextutil.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), id))
		c.Set("role", id.Role)
	}
}

func newRouter(svc compensation.Service, id contextutil.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	compensation.RegisterRoutes(r.Group("/api/v1"), compensation.NewHandler(svc), middleware.RoleGrants{Admin: []string{"ADMIN", "HR"}}, withIdentity(id))
	return r
}

func TestCompensationHandler_Create(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString(), Role: "HR"}
	employeeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeCompensationService{
			createFn: func(ctx context.Context, cid, actor string, req compensation.CreateProfileRequest) (compensation.ProfileResponse, error) {
				assert.Equal(t, id.TenantID, cid)
				assert.Equal(t, id.EmployeeID, actor)
				assert.Equal(t, int64(600000), *req.AnnualCTC)
				return compensation.ProfileResponse{ID: uuid.NewString(), EmployeeID: req.EmployeeID, AnnualCTC: *req.AnnualCTC}, nil
			},
		}

		w := httptest.NewRecorder()
		body := `{"employee_id":"` + employeeID + `","annual_ctc":600000,"regime":"NEW","effective_date":"2024-04-01"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/compensation-profiles", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc, id).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), employeeID)
	})

	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/compensation-profiles", bytes.NewBufferString(`{"regime":"FLAT"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&fakeCompensationService{}, id).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("non admin role is rejected", func(t *testing.T) {
		employee := id
		employee.Role = "EMPLOYEE"

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/compensation-profiles", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&fakeCompensationService{}, employee).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompensationHandler_History(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString(), Role: "ADMIN"}
	employeeID := uuid.NewString()

	svc := &fakeCompensationService{
		historyFn: func(ctx context.Context, cid, eid string) ([]compensation.ProfileResponse, error) {
			assert.Equal(t, employeeID, eid)
			return []compensation.ProfileResponse{
				{EmployeeID: eid, AnnualCTC: 720000, EffectiveDate: "2024-10-01"},
				{EmployeeID: eid, AnnualCTC: 600000, EffectiveDate: "2024-04-01"},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/compensation-profiles/"+employeeID, nil)
	newRouter(svc, id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "720000")
}

func TestCompensationHandler_DeleteReferenced(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString(), Role: "ADMIN"}

	svc := &fakeCompensationService{
		deleteFn: func(ctx context.Context, cid, actor, pid string) error {
			return compensationerrors.ErrProfileReferenced
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/compensation-profiles/"+uuid.NewString(), nil)
	newRouter(svc, id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}
