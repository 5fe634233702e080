package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/avelasquez/control-stock-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// Un token generado debe parsearse con los mismos claims.
func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "operador", "control-stock", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "operador", role)
}

// Secret vacío se rechaza en ambas direcciones.
func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "admin", "control-stock", 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "cualquier.token.aqui")
	assert.Error(t, err)
}

// Un token firmado con otro secret no valida.
func TestFirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", "user-1", "admin", "control-stock", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token firmado con otro secret debe rechazarse")
}

// Un token expirado no valida.
func TestTokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "admin", "control-stock", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token con expiración en el pasado debe rechazarse")
}
