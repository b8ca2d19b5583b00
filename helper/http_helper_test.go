package helper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"article-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Slug":       "slug",
		"SubTitle":   "sub_title",
		"LanguageID": "language_id",
		"HTTPStatus": "http_status",
		"Page2Size":  "page2_size",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}

func TestGetStatusCode(t *testing.T) {
	h := NewHTTPHelper()

	assert.Equal(t, http.StatusOK, h.GetStatusCode(nil))
	assert.Equal(t, http.StatusUnauthorized, h.GetStatusCode(models.NewUnauthorized("no")))
	assert.Equal(t, http.StatusNotFound, h.GetStatusCode(fmt.Errorf("load: %w", models.NewNotFound("gone"))))
	assert.Equal(t, http.StatusConflict, h.GetStatusCode(models.NewConflict("dup")))
	assert.Equal(t, http.StatusBadRequest, h.GetStatusCode(models.NewValidation("bad")))
	assert.Equal(t, http.StatusInternalServerError, h.GetStatusCode(fmt.Errorf("boom")))
}

func TestGeneratePaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHTTPHelper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "http://cms.local/api/v1/articles?page=2", nil)

	paging := h.GeneratePaging(c, 5, 2, 12)
	assert.Equal(t, 3, paging["total_pages"])
	assert.Equal(t, 12, paging["total_records"])

	links := paging["links"].(map[string]interface{})
	assert.Equal(t, "http://cms.local/api/v1/articles?page=1&per-page=5", links["previous"])
	assert.Equal(t, "http://cms.local/api/v1/articles?page=3&per-page=5", links["next"])
	assert.Equal(t, "http://cms.local/api/v1/articles?page=3&per-page=5", links["last"])

	paging = h.GeneratePaging(c, 5, 1, 0)
	assert.Equal(t, 0, paging["total_pages"])
	links = paging["links"].(map[string]interface{})
	assert.Empty(t, links["next"])
	assert.Empty(t, links["previous"])
}

func TestSendServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHTTPHelper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.SendServiceError(c, models.NewConflict("slug is already in use"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"header":"Conflict","message":"slug is already in use","state":"error"}`, w.Body.String())
}
