package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims son los claims esperados en los tokens del servicio de identidad.
// El motor solo valida: la emisión de tokens es responsabilidad de otro sistema.
type Claims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Manager valida (y genera, para pruebas) tokens HS256.
type Manager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewManager construye el manager. expirationMinutes aplica solo a Generate.
func NewManager(secret, issuer string, expirationMinutes int) *Manager {
	return &Manager{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: time.Duration(expirationMinutes) * time.Minute,
	}
}

// Generate emite un token firmado. Útil para tests y entornos locales.
func (m *Manager) Generate(userID, tenantID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse valida firma, expiración y método, y devuelve los claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
