package security

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleService = "service"
	RoleKitchen = "kitchen"
	RoleManager = "manager"
)

type StaffMember struct {
	Id    int
	Name  string
	Role  string
	Venue string
}

// Staff is the identity carried inside a token. Claim names follow the
// backend's convention: nameid for the id, unique_name for the display name.
type Staff struct {
	ID    int    `json:"nameid"`
	Name  string `json:"unique_name"`
	Role  string `json:"role"`
	Venue string `json:"venue"`
	SID   string `json:"sid"`
}

// StaffClaims includes Staff and standard JWT claims
type StaffClaims struct {
	Staff
	jwt.RegisteredClaims
}

func CreateStaffToken(member *StaffMember, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := StaffClaims{
		Staff: Staff{
			ID:    member.Id,
			Name:  member.Name,
			Role:  member.Role,
			Venue: member.Venue,
			SID:   "gastroclock-deviceId",
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gastrocore",
			Audience:  []string{"api.gastrocore.app"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}

func ParseStaffToken(tokenString string, base64Secret string) (*StaffClaims, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretBytes, nil
	}, jwt.WithIssuer("gastrocore"))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid staff token")
	}

	return claims, nil
}
