package attendance_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	recordEventFn func(ctx context.Context, companyID, employeeID string, req attendance.RecordEventRequest) (attendance.SessionSnapshot, error)
	getStatusFn   func(ctx context.Context, companyID, actorID, employeeID, date string) (attendance.SessionSnapshot, error)
}

func (f *fakeService) RecordEvent(ctx context.Context, companyID, employeeID string, req attendance.RecordEventRequest) (attendance.SessionSnapshot, error) {
	return f.recordEventFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) GetStatus(ctx context.Context, companyID, actorID, employeeID, date string) (attendance.SessionSnapshot, error) {
	return f.getStatusFn(ctx, companyID, actorID, employeeID, date)
}
func (f *fakeService) ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func newRouter(svc attendance.Service, id *contextutil.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attendance.RegisterRoutes(r.Group("/api/v1"), attendance.NewHandler(svc), func(c *gin.Context) {
		if id != nil {
			c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), *id))
			c.Set("user_id", id.EmployeeID)
		}
	})
	return r
}

func TestAttendanceHandler_RecordEvent(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString(), Role: "EMPLOYEE"}

	svc := &fakeService{
		recordEventFn: func(ctx context.Context, cid, eid string, req attendance.RecordEventRequest) (attendance.SessionSnapshot, error) {
			assert.Equal(t, id.TenantID, cid)
			assert.Equal(t, id.EmployeeID, eid)
			assert.Equal(t, "clock-in", req.Action)
			return attendance.SessionSnapshot{EmployeeID: eid, State: attendance.StateWorking}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/events", bytes.NewBufferString(`{"action":"clock-in","latitude":12.97,"longitude":77.59}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc, &id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"WORKING"`)
}

func TestAttendanceHandler_RecordEventConflict(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString()}

	svc := &fakeService{
		recordEventFn: func(ctx context.Context, cid, eid string, req attendance.RecordEventRequest) (attendance.SessionSnapshot, error) {
			return attendance.SessionSnapshot{}, attendanceerrors.ErrAlreadyClosed
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/events", bytes.NewBufferString(`{"action":"clock-out"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc, &id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestAttendanceHandler_RecordEventInvalidBody(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString()}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/events", bytes.NewBufferString(`{"latitude":500}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(&fakeService{}, &id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_RequiresIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendances/status", nil)
	newRouter(&fakeService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAttendanceHandler_GetStatus(t *testing.T) {
	id := contextutil.Identity{EmployeeID: uuid.NewString(), TenantID: uuid.NewString()}
	other := uuid.NewString()

	svc := &fakeService{
		getStatusFn: func(ctx context.Context, cid, actor, eid, date string) (attendance.SessionSnapshot, error) {
			assert.Equal(t, id.EmployeeID, actor)
			assert.Equal(t, other, eid)
			assert.Equal(t, "2024-06-03", date)
			return attendance.SessionSnapshot{EmployeeID: eid, State: attendance.StateIdle}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendances/status?date=2024-06-03&employee_id="+other, nil)
	newRouter(svc, &id).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"IDLE"`)
}
