package http

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/wellnest/api/internal/core/domain"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

type CookieConfig struct {
	Secret     []byte
	Secure     bool
	Domain     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Cookies writes and reads the session cookies. Values are HMAC signed so a
// tampered cookie reads as absent.
type Cookies struct {
	codec *securecookie.SecureCookie
	cfg   CookieConfig
}

func NewCookies(cfg CookieConfig) *Cookies {
	codec := securecookie.New(cfg.Secret, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.RefreshTTL.Seconds()))
	return &Cookies{codec: codec, cfg: cfg}
}

func (c *Cookies) SetTokens(w http.ResponseWriter, pair *domain.TokenPair) error {
	if err := c.set(w, accessTokenCookie, pair.AccessToken, c.cfg.AccessTTL); err != nil {
		return err
	}
	return c.set(w, refreshTokenCookie, pair.RefreshToken, c.cfg.RefreshTTL)
}

func (c *Cookies) set(w http.ResponseWriter, name, value string, ttl time.Duration) error {
	encoded, err := c.codec.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		Domain:   c.cfg.Domain,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
	return nil
}

// Read returns the verified value of the named cookie.
func (c *Cookies) Read(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var value string
	if err := c.codec.Decode(name, cookie.Value, &value); err != nil {
		return "", false
	}
	return value, true
}

func (c *Cookies) Expire(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			Domain:   c.cfg.Domain,
			HttpOnly: true,
			Secure:   c.cfg.Secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
