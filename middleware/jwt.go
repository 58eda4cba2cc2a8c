package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warrantyhub/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AdminCookieName is the only cookie that carries an admin session.
const AdminCookieName = "admin-token"

// Locals keys set by AdminAuthMiddleware.
const (
	LocalAdminID    = "adminId"
	LocalAdminEmail = "adminEmail"
	LocalAdminName  = "adminName"
)

// AdminClaims is the payload of an admin session token.
type AdminClaims struct {
	AdminID uint   `json:"adminId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// AdminIdentity is the identity recovered from a verified token.
type AdminIdentity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func tokenTTL() time.Duration {
	hours := config.AppConfig.JWTExpiryHours
	if hours <= 0 {
		hours = 7 * 24
	}
	return time.Duration(hours) * time.Hour
}

// GenerateAdminToken signs a session token for an admin and returns it with its expiry.
func GenerateAdminToken(adminID uint, email, name string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(tokenTTL())

	claims := AdminClaims{
		AdminID: adminID,
		Email:   email,
		Name:    name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			Subject:   fmt.Sprint(adminID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseAdminToken verifies signature and expiry and returns the identity.
func ParseAdminToken(tokenString string) (*AdminIdentity, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.AdminID == 0 {
		return nil, errors.New("invalid token payload")
	}
	return &AdminIdentity{ID: claims.AdminID, Email: claims.Email, Name: claims.Name}, nil
}

// SetAdminCookie stores the session token in an HTTP-only cookie.
func SetAdminCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   config.AppConfig.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearAdminCookie expires the session cookie.
func ClearAdminCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   config.AppConfig.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// AdminAuthMiddleware checks the session cookie, falling back to a Bearer header
// for API clients. The token alone is trusted; no database lookup happens here.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(AdminCookieName)
	if tokenString == "" {
		if authHeader := c.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(authHeader[len("Bearer "):])
		}
	}
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Not authenticated!", nil)
	}

	identity, err := ParseAdminToken(tokenString)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired session!", nil)
	}

	c.Locals(LocalAdminID, identity.ID)
	c.Locals(LocalAdminEmail, identity.Email)
	c.Locals(LocalAdminName, identity.Name)

	return c.Next()
}

// CurrentAdmin reads the identity stored by AdminAuthMiddleware.
func CurrentAdmin(c *fiber.Ctx) (AdminIdentity, bool) {
	id, ok := c.Locals(LocalAdminID).(uint)
	if !ok {
		return AdminIdentity{}, false
	}
	email, _ := c.Locals(LocalAdminEmail).(string)
	name, _ := c.Locals(LocalAdminName).(string)
	return AdminIdentity{ID: id, Email: email, Name: name}, true
}
