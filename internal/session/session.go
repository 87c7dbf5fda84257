package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	CookieName = "civic_session"
	localeKey  = "locale"
	sessionTTL = 30 * 24 * time.Hour
)

var (
	ErrUnsupportedLocale = errors.New("unsupported locale")

	ephemeralOnce   sync.Once
	ephemeralSecret []byte
	ephemeralErr    error
)

// Manager keeps the preferred language in an HS256-signed cookie.
type Manager struct {
	secret        []byte
	languages     map[string]string
	defaultLocale string
	secure        bool
	now           func() time.Time
}

type Options struct {
	SecretKey     string
	Languages     map[string]string
	DefaultLocale string
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

func NewManager(opts Options, log logrus.FieldLogger) (*Manager, error) {
	secret := []byte(opts.SecretKey)
	if len(secret) == 0 {
		var err error
		secret, err = fallbackSecret()
		if err != nil {
			return nil, err
		}
		log.Warn("SECRET_KEY is not set; using ephemeral in-memory session secret")
	}
	return &Manager{
		secret:        secret,
		languages:     opts.Languages,
		defaultLocale: opts.DefaultLocale,
		secure:        opts.Secure,
		now:           time.Now,
	}, nil
}

func fallbackSecret() ([]byte, error) {
	ephemeralOnce.Do(func() {
		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			ephemeralErr = fmt.Errorf("failed to generate session fallback secret: %w", err)
			return
		}
		ephemeralSecret = []byte(base64.RawURLEncoding.EncodeToString(buf))
	})
	if ephemeralErr != nil {
		return nil, ephemeralErr
	}
	return ephemeralSecret, nil
}

// Middleware resolves the request locale from the session cookie. Anything
// missing or invalid resolves to the default locale.
func (m *Manager) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(localeKey, m.localeFromRequest(c.Request()))
		return next(c)
	}
}

func (m *Manager) localeFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return m.defaultLocale
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return m.defaultLocale
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return m.defaultLocale
	}
	lang, _ := claims["lang"].(string)
	if _, ok := m.languages[lang]; !ok {
		return m.defaultLocale
	}
	return lang
}

// SetLocale stores lang in the session cookie and in the current request.
func (m *Manager) SetLocale(c echo.Context, lang string) error {
	if _, ok := m.languages[lang]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, lang)
	}

	now := m.now()
	claims := jwt.MapClaims{
		"lang": lang,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(sessionTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(localeKey, lang)
	return nil
}

// Locale returns the locale resolved by Middleware, or "" outside of it.
func Locale(c echo.Context) string {
	lang, _ := c.Get(localeKey).(string)
	return lang
}
