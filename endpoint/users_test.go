package endpoint_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePasswordClosesSessions(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodPatch, "/account/password", map[string]string{"current_password": "wrong-one", "new_password": "newpass123"}, user.Token)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(ts.r, http.MethodPatch, "/account/password", map[string]string{"current_password": "adminpass", "new_password": "newpass123"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(ts.r, http.MethodGet, "/profile", nil, user.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(ts.r, http.MethodPost, "/login", map[string]string{"email": "clara@example.com", "password": "adminpass"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	login(t, ts.r, "clara@example.com", "newpass123")
}

func TestUpdateEmail(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	CreateAndLoginUser(t, ts.r, SignupCreds{Name: "Dan", Email: "dan@example.com", Password: "danpass123"})

	rr := doRequest(ts.r, http.MethodPatch, "/account/email", map[string]string{"password": "adminpass", "email": "dan@example.com"}, user.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(ts.r, http.MethodPatch, "/account/email", map[string]string{"password": "adminpass", "email": "Clara.New@Example.com"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Equal(t, "clara.new@example.com", data["email"])

	login(t, ts.r, "clara.new@example.com", "adminpass")
}

func TestProfileBeforeAndAfterSetup(t *testing.T) {
	ts := SetupTestServer(t)
	user := CreateAndLoginUser(t, ts.r, SignupCreds{Name: "Eve Davis", Email: "eve@example.com", Password: "evepass123"})

	rr := doRequest(ts.r, http.MethodGet, "/profile", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, true, ParseDataToMap(t, ParseAPIResp(t, rr).Data)["needs_setup"])

	// tenant routes need a clinic
	rr = doRequest(ts.r, http.MethodGet, "/patients", nil, user.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(ts.r, http.MethodPost, "/clinic/setup", map[string]string{"clinic_name": "eve dental", "full_name": "eve davis"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(ts.r, http.MethodPost, "/clinic/setup", map[string]string{"clinic_name": "Another"}, user.Token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(ts.r, http.MethodGet, "/profile", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var profile struct {
		NeedsSetup bool `json:"needs_setup"`
		Clinic     struct {
			Name string `json:"name"`
		} `json:"clinic"`
	}
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &profile))
	assert.False(t, profile.NeedsSetup)
	assert.Equal(t, "eve dental", profile.Clinic.Name)

	rr = doRequest(ts.r, http.MethodGet, "/patients", nil, user.Token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSetupClinicValidation(t *testing.T) {
	ts := SetupTestServer(t)
	user := CreateAndLoginUser(t, ts.r, SignupCreds{Name: "Frank", Email: "frank@example.com", Password: "frankpass1"})

	rr := doRequest(ts.r, http.MethodPost, "/clinic/setup", map[string]string{"clinic_name": ""}, user.Token)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, ParseDataToMap(t, ParseAPIResp(t, rr).Data), "clinic_name")
}

func TestListStaff(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodGet, "/staff", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var staff []map[string]interface{}
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &staff))
	require.Len(t, staff, 1)
	assert.Equal(t, "clara@example.com", staff[0]["email"])
	assert.Equal(t, "Admin", staff[0]["position"])
}
