package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"almacen/internal/apierror"
	"almacen/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recordError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)
	return w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{apierror.Validation("precio invalido"), http.StatusUnprocessableEntity},
		{apierror.NotFound("no existe"), http.StatusNotFound},
		{apierror.Restricted("tiene productos"), http.StatusConflict},
		{apierror.Protected("tiene productos"), http.StatusConflict},
		{apierror.Conflict("nombre duplicado"), http.StatusConflict},
	}
	for _, tc := range cases {
		w := recordError(tc.err)
		assert.Equal(t, tc.expected, w.Code, "kind %v", apierror.KindOf(tc.err))
	}
}

func TestRespondErrorValidationIncludesFields(t *testing.T) {
	w := recordError(apierror.ValidationFields("precios invalidos", map[string]string{
		"sale_price": "gtfield=purchase_price",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "sale_price")
}

func TestRespondErrorUnknownRendersSingle500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		respondError(c, assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail is not leaked to the client
	assert.False(t, strings.Contains(w.Body.String(), assert.AnError.Error()))

	// The body must be exactly one JSON document, not the handler's
	// payload followed by the middleware's.
	dec := json.NewDecoder(strings.NewReader(w.Body.String()))
	var body struct {
		Detail string `json:"detail"`
	}
	assert.NoError(t, dec.Decode(&body))
	assert.Equal(t, "Error interno del servidor", body.Detail)
	assert.False(t, dec.More(), "response contains more than one JSON document")
}

func TestBindAndValidateRejectsBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{no json"))
	c.Request.Header.Set("Content-Type", "application/json")

	var body struct {
		Name string `json:"name" validate:"required"`
	}
	ok := bindAndValidate(c, &body)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindAndValidateReportsFieldTags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var body struct {
		Name string `json:"name" validate:"required"`
	}
	ok := bindAndValidate(c, &body)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}
