package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/medtrack/medtrack-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testOrgID  = "00000000-0000-0000-0000-000000000002"
	testDeptID = "00000000-0000-0000-0000-000000000003"
	testIssuer = "medtrack-test"
	testExpMin = 60
)

func TestGenerateAndParse_ConAlcance(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOrgID, testDeptID, "store_manager", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testOrgID, claims.OrganizationID)
	assert.Equal(t, testDeptID, claims.DepartmentID)
	assert.Equal(t, "store_manager", claims.Role)
}

func TestParse_SinDepartamento(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOrgID, "", "operations", testIssuer, testExpMin)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, claims.DepartmentID, "operations puede no tener departamento")
	assert.Equal(t, "operations", claims.Role)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOrgID, testDeptID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOrgID, testDeptID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
