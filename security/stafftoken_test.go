package security

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("gastrocore-test-signing-secret!!"))

func TestStaffTokenRoundTrip(t *testing.T) {
	member := &StaffMember{
		Id:    42,
		Name:  "Anna K",
		Role:  RoleService,
		Venue: "carlsburger-mitte",
	}

	tokenString, err := CreateStaffToken(member, testSecret, 3600)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseStaffToken(tokenString, testSecret)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.Staff.ID)
	assert.Equal(t, "Anna K", claims.Name)
	assert.Equal(t, RoleService, claims.Role)
	assert.Equal(t, "carlsburger-mitte", claims.Venue)
	assert.Equal(t, "gastrocore", claims.Issuer)
}

func TestParseStaffTokenRejectsWrongSecret(t *testing.T) {
	member := &StaffMember{Id: 7, Name: "Jonas B", Role: RoleKitchen}

	tokenString, err := CreateStaffToken(member, testSecret, 3600)
	require.NoError(t, err)

	otherSecret := base64.StdEncoding.EncodeToString([]byte("another-secret-entirely-here!!!!"))
	_, err = ParseStaffToken(tokenString, otherSecret)
	assert.Error(t, err)
}

func TestParseStaffTokenRejectsExpired(t *testing.T) {
	member := &StaffMember{Id: 7, Name: "Jonas B", Role: RoleKitchen}

	tokenString, err := CreateStaffToken(member, testSecret, -60)
	require.NoError(t, err)

	_, err = ParseStaffToken(tokenString, testSecret)
	assert.Error(t, err)
}

func TestCreateStaffTokenRejectsBadSecret(t *testing.T) {
	member := &StaffMember{Id: 7, Name: "Jonas B", Role: RoleManager}

	_, err := CreateStaffToken(member, "not-base64!!", 3600)
	assert.Error(t, err)
}
