package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func recordServiceError(status int, err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/workers", nil)
	serviceError(c, status, err)
	return rec
}

func TestServiceError_UniqueViolationHidesConstraintName(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "idx_workers_username"`,
		ConstraintName: "idx_workers_username",
	}
	rec := recordServiceError(http.StatusBadRequest, fmt.Errorf("create worker: %w", pgErr))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotContains(t, rec.Body.String(), "idx_workers_username")
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestServiceError_DriverErrorsGetGenericMessage(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "workers" does not exist`}
	rec := recordServiceError(http.StatusBadRequest, pgErr)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), "Internal error")
}

func TestServiceError_RecordNotFoundMapsTo404(t *testing.T) {
	rec := recordServiceError(http.StatusBadRequest, gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServiceError_DomainErrorsEchoThrough(t *testing.T) {
	rec := recordServiceError(http.StatusBadRequest, errors.New("worker must hold at least one active branch assignment"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "active branch assignment")
}
