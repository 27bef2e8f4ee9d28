package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error)
	GetActiveFn  func(ctx context.Context, department string) ([]employee.EmployeeResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeactivateFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeEmployeeService) GetActive(ctx context.Context, department string) ([]employee.EmployeeResponse, error) {
	return f.GetActiveFn(ctx, department)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.DeactivateFn(ctx, id)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error map[string]any  `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.FullName)
				assert.Equal(t, "30000.5", req.MonthlySalary.String())
				return employee.EmployeeResponse{
					ID:            uuid.NewString(),
					FullName:      req.FullName,
					Department:    req.Department,
					MonthlySalary: req.MonthlySalary.StringFixed(2),
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John Doe","department":"Mechanic","monthly_salary":"30000.50","date_of_joining":"2024-01-15"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"monthly_salary":"30000.50"`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{"department":"Mechanic"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error["code"])
	})

	t.Run("service error is mapped", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrInvalidDepartment
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John","department":"Finance","monthly_salary":100}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w)
		assert.Equal(t, employeeerrors.ErrInvalidDepartment.Message, env.Error["message"])
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeEmployeeService{
		GetAllFn: func(_ context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
			assert.Equal(t, "Mechanic", filter.Department)
			return []employee.EmployeeResponse{
				{ID: "1", FullName: "Zaki", EmployeeCode: "EMP-000003"},
				{ID: "2", FullName: "Adi", EmployeeCode: "EMP-000001"},
				{ID: "3", FullName: "Budi", EmployeeCode: "EMP-000002"},
			}, nil
		},
	}

	r := gin.New()
	r.GET("/employees", employee.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?department=Mechanic&page=1&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w)

	var items []employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Adi", items[0].FullName)
	assert.Equal(t, "Budi", items[1].FullName)
	assert.EqualValues(t, 3, env.Meta["total"])
	assert.EqualValues(t, 2, env.Meta["totalPages"])
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeEmployeeService{
		GetByIDFn: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}

	r := gin.New()
	r.GET("/employees/:id", employee.NewHandler(svc).GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w)
	assert.Equal(t, "NOT_FOUND", env.Error["code"])
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.NewString()

	svc := &fakeEmployeeService{
		DeactivateFn: func(_ context.Context, got string) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, got)
			return employee.EmployeeResponse{ID: got, Status: "Inactive"}, nil
		},
	}

	r := gin.New()
	r.POST("/employees/:id/deactivate", employee.NewHandler(svc).Deactivate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees/"+id+"/deactivate", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Inactive"`)
}
