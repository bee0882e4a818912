package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/constants"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

// Locale resolves the response language once per request.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyLang, i18n.Detect(c.GetHeader(constants.HeaderAcceptLanguage)))
		c.Next()
	}
}
