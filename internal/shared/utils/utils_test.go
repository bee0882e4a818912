package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/shared/constants"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name           string
		page, size     int
		wantPage, want int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"over max", 2, 500, 2, 100},
		{"in range", 3, 50, 3, 50},
		{"page capped", math.MaxInt, 10, constants.MaxPage, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ValidatePagination(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.want, p.PageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
}

func TestParsePagination_LimitAndAlias(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=abc&limit=1000", nil)
	p := ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&page_size=5", nil)
	p = ParsePagination(c)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PageSize)
}

type createReq struct {
	Title    string `json:"title" validate:"notblank,max=5"`
	Category string `json:"category" validate:"required,oneof=A B"`
}

func TestValidateStruct_PerFieldErrors(t *testing.T) {
	err := ValidateStruct(createReq{Title: "   ", Category: "C"})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "title is required", appErr.Fields["title"])
	assert.Equal(t, "category must be one of [A B]", appErr.Fields["category"])

	assert.NoError(t, ValidateStruct(createReq{Title: "ok", Category: "A"}))
}

func TestErrorResponseWithError_LocalizesAndHidesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "th")
	ErrorResponseWithError(c, errors.NewNotFoundError("Ticket not found").WithKey(i18n.KeyTicketNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "not_found", resp.Error.Type)
	assert.Equal(t, "ไม่พบรายการแจ้งปัญหา", resp.Error.Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ErrorResponseWithError(c, fmt.Errorf("dial tcp: secret host"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret host")
}

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseUintParam(c, "id", "ticket")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = ParseUintParam(c, "id", "ticket")
	assert.True(t, errors.IsValidationError(err))
}
