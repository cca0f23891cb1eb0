package endpoint_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	ts := SetupTestServer(t)

	user := CreateAndLoginUser(t, ts.r, SignupCreds{Name: "alice johnson", Email: "Alice@Example.com", Password: "pass12345"})
	assert.NotEmpty(t, user.Token)
	assert.Equal(t, "Admin", user.Role)
	assert.True(t, user.NeedsSetup)
	assert.Empty(t, user.ClinicID)

	var stored model.User
	require.NoError(t, ts.db.First(&stored, user.UserID).Error)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, "alice johnson", stored.Name)
	assert.NotEqual(t, "pass12345", stored.Password)
}

func TestSignupWithClinic(t *testing.T) {
	_, user := SetupServerWithClinic(t)
	assert.False(t, user.NeedsSetup)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ts := SetupTestServer(t)
	CreateAndLoginUser(t, ts.r, SignupCreds{Name: "Bob Smith", Email: "bob@example.com", Password: "pass12345"})

	rr := doRequest(ts.r, http.MethodPost, "/signup", map[string]string{"name": "Bob Two", "email": "bob@example.com", "password": "pass12345"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already exists", ParseAPIResp(t, rr).Msg)
}

func TestSignupValidationUsesJSONFieldNames(t *testing.T) {
	ts := SetupTestServer(t)

	rr := doRequest(ts.r, http.MethodPost, "/signup", map[string]string{"name": "Bob", "email": "not-an-email", "password": "short"}, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	fields := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLoginWrongPasswordLocksAccount(t *testing.T) {
	ts := SetupTestServer(t)
	CreateAndLoginUser(t, ts.r, SignupCreds{Name: "Carol", Email: "carol@example.com", Password: "pass12345"})

	for i := 0; i < 5; i++ {
		rr := doRequest(ts.r, http.MethodPost, "/login", map[string]string{"email": "carol@example.com", "password": "wrong-pass"}, "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	}

	rr := doRequest(ts.r, http.MethodPost, "/login", map[string]string{"email": "carol@example.com", "password": "pass12345"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, ParseAPIResp(t, rr).Msg, "Account is locked")
}

func TestLoginUnknownEmail(t *testing.T) {
	ts := SetupTestServer(t)
	rr := doRequest(ts.r, http.MethodPost, "/login", map[string]string{"email": "ghost@example.com", "password": "whatever1"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid email or password", ParseAPIResp(t, rr).Msg)
}

func TestLogoutEndsSession(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodDelete, "/logout", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(ts.r, http.MethodGet, "/patients", nil, user.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestValidateToken(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodGet, "/token/validate", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Equal(t, "clara@example.com", data["email"])
	assert.Equal(t, "Admin", data["role"])
	assert.Equal(t, user.ClinicID, data["clinic_id"])

	rr = doRequest(ts.r, http.MethodGet, "/token/validate", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = doRequest(ts.r, http.MethodGet, "/token/validate", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerifyPassword(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodPost, "/verify-password", map[string]string{"password": "adminpass"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var data map[string]bool
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &data))
	assert.True(t, data["verified"])

	rr = doRequest(ts.r, http.MethodPost, "/verify-password", map[string]string{"password": "nope-nope"}, user.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerifyPasswordRequiresSession(t *testing.T) {
	ts := SetupTestServer(t)
	rr := doRequest(ts.r, http.MethodPost, "/verify-password", map[string]string{"password": "adminpass"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
