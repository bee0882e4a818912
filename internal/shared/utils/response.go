package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/constants"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

// APIResponse is the envelope every JSON route returns.
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ListResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func CreatedResponse(c *gin.Context, data any, message ...string) {
	resp := APIResponse{Success: true, Data: data, Message: "Resource created successfully"}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	c.JSON(http.StatusCreated, resp)
}

// ErrorResponseWithError maps an AppError to its status code and localizes
// its message. Anything else becomes a generic 500 without internal details.
func ErrorResponseWithError(c *gin.Context, err error) {
	lang := LangFromContext(c)

	appErr := errors.GetAppError(err)
	if appErr == nil {
		msg, ok := i18n.Lookup(lang, i18n.KeyInternal)
		if !ok {
			msg = constants.ErrMsgInternalServerError
		}
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Error:   &ErrorInfo{Type: string(errors.ErrorTypeInternal), Message: msg},
		})
		return
	}

	msg := appErr.Message
	if appErr.Key != "" {
		if localized, ok := i18n.Lookup(lang, appErr.Key); ok {
			msg = localized
		}
	}
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: msg,
			Details: appErr.Details,
			Fields:  appErr.Fields,
		},
	})
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}

func ListSuccessResponse(c *gin.Context, items any, total int64, page, pageSize int, message ...string) {
	resp := APIResponse{
		Success: true,
		Data: ListResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: TotalPages(total, pageSize),
		},
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	c.JSON(http.StatusOK, resp)
}

// LangFromContext returns the language chosen by the locale middleware, or
// detects it from the request header when the middleware did not run.
func LangFromContext(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(constants.ContextKeyLang); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	if c.Request == nil {
		return i18n.EN
	}
	return i18n.Detect(c.GetHeader(constants.HeaderAcceptLanguage))
}
