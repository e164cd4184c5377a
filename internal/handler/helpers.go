package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"reflect"

	"almacen/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate is the query-string counterpart of bindAndValidate.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// readImageUpload pulls the "image" multipart file into memory. Writes the
// error response and returns false when the form is malformed.
func readImageUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo 'image'"))
		return nil, "", false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return nil, "", false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return nil, "", false
	}
	return data, filepath.Ext(fileHeader.Filename), true
}

// respondError maps service-layer error kinds to HTTP statuses. Unknown
// errors become opaque 500s through the error-handler middleware.
func respondError(c *gin.Context, err error) {
	var domainErr *apierror.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case apierror.KindValidation:
			if domainErr.Fields != nil {
				c.JSON(http.StatusUnprocessableEntity, &apierror.ValidationError{
					Detail: domainErr.Detail,
					Fields: domainErr.Fields,
				})
				return
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.New(domainErr.Detail))
		case apierror.KindNotFound:
			c.JSON(http.StatusNotFound, apierror.New(domainErr.Detail))
		case apierror.KindRestricted, apierror.KindProtected, apierror.KindConflict:
			c.JSON(http.StatusConflict, apierror.New(domainErr.Detail))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(domainErr.Detail))
		}
		return
	}
	// Unexpected errors are attached to the context; the error handler
	// middleware logs them and renders the single opaque 500 response.
	// Writing the body here as well would duplicate it.
	_ = c.Error(err)
}
