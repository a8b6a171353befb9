package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/service"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	RespondError(ctx, err)
	return rec
}

func TestRespondErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", service.ErrValidation, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"closed exam", service.ErrExamClosed, http.StatusForbidden},
		{"missing resource", service.ErrNotFound, http.StatusNotFound},
		{"taken email", service.ErrEmailTaken, http.StatusConflict},
		{"duplicate branch", service.ErrDuplicateBranch, http.StatusConflict},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond(tt.err).Code)
		})
	}
}

func TestRespondErrorBulkRowsConflict(t *testing.T) {
	rec := respond(&service.BulkRegisterError{Rows: []dto.BulkRowError{
		{Email: "dup@example.test", Reason: "email already registered"},
	}})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "dup@example.test")
}
