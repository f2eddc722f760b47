package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims are the admin claims the API puts in its access token. The console
// never holds the signing key; it only reads them.
type Claims struct {
	AdminID       string `json:"adminId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	AdminType     string `json:"adminType"`
	AssociationID string `json:"associationId"`
	CooperativeID string `json:"cooperativeId"`
	jwt.RegisteredClaims
}

// ReadClaims decodes the token payload without verifying its signature.
// The API is the only party that validates tokens.
func ReadClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.AdminID == "" {
		claims.AdminID = claims.Subject
	}
	return claims, nil
}
