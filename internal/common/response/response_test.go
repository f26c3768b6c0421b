// Package response 统一响应格式单元测试
package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest 创建测试用的 Gin 上下文
func setupTest() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ==================== Success 测试 ====================

func TestSuccess(t *testing.T) {
	c, w := setupTest()

	Success(c, map[string]interface{}{"id": 123})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestSuccess_WithNilData(t *testing.T) {
	c, w := setupTest()

	Success(c, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"data"`)
}

func TestCreated(t *testing.T) {
	c, w := setupTest()

	Created(c, map[string]string{"bookingNo": "B1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)
}

func TestSuccessPage(t *testing.T) {
	c, w := setupTest()

	SuccessPage(c, []int{1, 2}, 12, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pageSize":10`)
	assert.Contains(t, w.Body.String(), `"total":12`)
}

// ==================== Error 测试 ====================

func TestError(t *testing.T) {
	c, w := setupTest()

	Error(c, http.StatusBadRequest, 8105, "入住人数超过房间容量", map[string]any{"max": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseError(t, w)
	assert.Equal(t, 8105, body.Code)
	assert.Equal(t, "入住人数超过房间容量", body.Error)
	assert.EqualValues(t, 2, body.Details["max"])
}

func TestError_OmitsEmptyDetails(t *testing.T) {
	c, w := setupTest()

	Error(c, http.StatusConflict, 8104, "所选日期已被预订", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotContains(t, w.Body.String(), "details")
}

func TestShortcutErrors(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(*gin.Context, string)
		status int
		msg    string
	}{
		{"BadRequest", BadRequest, http.StatusBadRequest, "bad request"},
		{"Unauthorized", Unauthorized, http.StatusUnauthorized, "unauthorized"},
		{"Forbidden", Forbidden, http.StatusForbidden, "forbidden"},
		{"NotFound", NotFound, http.StatusNotFound, "not found"},
		{"TooManyRequests", TooManyRequests, http.StatusTooManyRequests, "too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTest()
			tt.fn(c, "")
			assert.Equal(t, tt.status, w.Code)
			body := parseError(t, w)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.msg, body.Error)
		})
	}

	c, w := setupTest()
	NotFound(c, "房间不存在")
	assert.Equal(t, "房间不存在", parseError(t, w).Error)
}
