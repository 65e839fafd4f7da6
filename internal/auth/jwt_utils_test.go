package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	token, err := GenerateToken(42, "ashajewels", "vendor", "tenant_asha", "Asha Jewels", "AJ")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.VendorID)
	assert.Equal(t, "ashajewels", claims.Username)
	assert.Equal(t, "vendor", claims.Role)
	assert.Equal(t, "tenant_asha", claims.DBName)
	assert.Equal(t, "Asha Jewels", claims.BrandFull)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key_one")
	token, err := GenerateToken(1, "shop", "vendor", "tenant_shop", "", "")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key_two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
