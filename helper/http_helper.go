package helper

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"article-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	stateError   = `error`
	stateSuccess = `success`
)

// ResponseHelper ...
type ResponseHelper struct {
	C       *gin.Context
	Status  int
	State   string
	Header  string
	Message string
	Action  string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper with an English translated validator.
func NewHTTPHelper() *HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		slog.Error("register validator translations", "error", err)
	}

	return &HTTPHelper{Validate: validate, Translator: trans}
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	var (
		notFound     *models.ErrorNotFound
		conflict     *models.ErrorConflict
		unauthorized *models.ErrorUnauthorized
		validation   *models.ErrorValidation
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status int, state, header, message, action string) ResponseHelper {
	return ResponseHelper{c, status, state, header, message, action}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, status int, header, message string) {
	u.SendResponse(u.SetResponse(c, status, stateError, header, message, ""))
}

// SendServiceError ...
// Send the response matching an error returned by a service.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	switch status {
	case http.StatusUnauthorized:
		u.SendUnauthorizedError(c, err.Error())
	case http.StatusNotFound:
		u.SendNotFoundError(c, err.Error())
	case http.StatusConflict:
		u.SendConflictError(c, err.Error())
	case http.StatusBadRequest:
		u.SendBadRequest(c, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		u.SendDatabaseError(c, "internal server error")
	}
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendError(c, http.StatusBadRequest, "Bad request", message)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"header":  "Validation error",
		"message": "the given data was invalid",
		"state":   stateError,
		"errors":  errorResponse,
	})
}

// SendDatabaseError ...
// Send database error response to consumers.
func (u *HTTPHelper) SendDatabaseError(c *gin.Context, message string) {
	u.SendError(c, http.StatusInternalServerError, "Server error", message)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	u.SendError(c, http.StatusUnauthorized, "Unauthorized", message)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.SendError(c, http.StatusNotFound, "Not found", message)
}

// SendConflictError ...
// Send conflict response to consumers.
func (u *HTTPHelper) SendConflictError(c *gin.Context, message string) {
	u.SendError(c, http.StatusConflict, "Conflict", message)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, http.StatusOK, stateSuccess, "Success", message, ""))
}

// SendSuccessWithAction ...
func (u *HTTPHelper) SendSuccessWithAction(c *gin.Context, message, action string) {
	u.SendResponse(u.SetResponse(c, http.StatusOK, stateSuccess, "Success", message, action))
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if len(res.Message) == 0 {
		res.Message = stateSuccess
	}

	body := gin.H{
		"header":  res.Header,
		"message": res.Message,
		"state":   res.State,
	}
	if res.Action != "" {
		body["action"] = res.Action
	}

	res.C.JSON(res.Status, body)
}

// BindAndValidate decodes the JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func (u *HTTPHelper) BindAndValidate(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		u.SendBadRequest(c, "invalid request body")
		return false
	}
	if err := u.Validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendBadRequest(c, err.Error())
		return false
	}
	return true
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, perPage int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	currentURL := scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&per-page=" + strconv.Itoa(perPage)
	return currentURL
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, perPage, page, totalRecord int) map[string]interface{} {
	var prev, next int
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(perPage)))

	if page > 1 {
		prev = page - 1
	}
	if page < totalPages {
		next = page + 1
	}

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, prev, perPage)
		firstURL = u.GetPagingUrl(c, 1, perPage)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, next, perPage)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, perPage)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	pagination := map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      perPage,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}

	return pagination
}
