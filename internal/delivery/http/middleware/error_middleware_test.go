package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "validation error with fields",
			err:            apperror.Invalid("Invalid form data", []domain.FieldError{{Field: "email", Reason: "is required"}}, nil),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Invalid form data","errors":[{"field":"email","reason":"is required"}]}`,
		},
		{
			name:           "internal error hides cause",
			err:            apperror.Internal(errors.New("pq: password authentication failed")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"Internal server error"}`,
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
