package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplecart/backend/internal/interfaces/http/dto"
)

func TestValidatePostalCode(t *testing.T) {
	SetupValidator()

	type payload struct {
		PostalCode string `json:"postal_code" binding:"required,postal_code"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(p))
	})

	tests := []struct {
		name       string
		postalCode string
		wantStatus int
	}{
		{"compact format", "V1X5V1", http.StatusOK},
		{"spaced format", "V1X 5V1", http.StatusOK},
		{"lowercase", "v1x5v1", http.StatusOK},
		{"us zip code", "90210", http.StatusBadRequest},
		{"too short", "V1X", http.StatusBadRequest},
		{"digits swapped", "1V1X5V", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(payload{PostalCode: tt.postalCode})
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/test", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	SetupValidator()

	type payload struct {
		Name       string `json:"name" binding:"required"`
		PostalCode string `json:"postal_code" binding:"required,postal_code"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte(`{"postal_code":"invalid"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)

	// Field names come from JSON tags
	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "postal_code")
}
