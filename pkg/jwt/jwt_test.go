package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-de-prueba"

func TestGenerateParse(t *testing.T) {
	sub := Subject{UserID: "u-1", Email: "ana@x.co", Name: "Ana"}
	tok, err := Generate(testSecret, sub, "retail-api", 60)
	require.NoError(t, err)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ana@x.co", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "retail-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAtTime(), 5*time.Second)
}

func TestGenerate_JTIUnico(t *testing.T) {
	sub := Subject{UserID: "u-1"}
	a, err := Generate(testSecret, sub, "", 60)
	require.NoError(t, err)
	b, err := Generate(testSecret, sub, "", 60)
	require.NoError(t, err)

	ca, err := Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: "u-1"}, "", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate(testSecret, Subject{UserID: "u-1"}, "", -1)
	require.NoError(t, err)
	_, err = Parse(testSecret, expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	_, err = Parse(testSecret, "no.es.jwt")
	assert.Error(t, err)

	// alg none no se acepta
	none := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{UserID: "u-1"})
	raw, err := none.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = Parse(testSecret, raw)
	assert.Error(t, err)
}

func TestParse_SinSujeto(t *testing.T) {
	tok, err := Generate(testSecret, Subject{}, "", 60)
	require.NoError(t, err)
	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", Subject{UserID: "u-1"}, "", 60)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}

func TestExpiresAtTime_SinExp(t *testing.T) {
	assert.True(t, (&Claims{}).ExpiresAtTime().IsZero())
}
