package middleware

import (
	"net/http"
	"time"

	"autocare_portal_go/config"
	"autocare_portal_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// LanguageCookieName stores the explicitly chosen language
const LanguageCookieName = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = "en"
				}
				writeLanguageCookie(c, lang, cfg.IsProduction())
			} else if cookie, err := c.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = i18n.FromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			setLocale(c, lang)
			return next(c)
		}
	}
}

// UserLocale applies the signed-in user's saved language when the visitor
// has not picked one explicitly. It must run after RequireAuth.
func UserLocale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil || !i18n.IsSupported(user.Language) {
				return next(c)
			}
			if c.QueryParam("lang") != "" {
				return next(c)
			}
			if _, err := c.Cookie(LanguageCookieName); err == nil {
				return next(c)
			}
			setLocale(c, user.Language)
			return next(c)
		}
	}
}

// setLocale stores lang in the echo context and the request context used by templ
func setLocale(c echo.Context, lang string) {
	c.Set("locale", lang)
	c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	writeLanguageCookie(c, lang, isProduction(c))
}

func writeLanguageCookie(c echo.Context, lang string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     LanguageCookieName,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok && lang != "" {
		return lang
	}
	return "en"
}
