package endpoint_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummaryAndMetrics(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	dentistID := createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Lopez"})
	createEntity(t, ts.r, "/patients", user.Token, map[string]string{"full_name": "Ana Ruiz"})
	createEntity(t, ts.r, "/patients", user.Token, map[string]string{"full_name": "Bruno Diaz"})
	createEntity(t, ts.r, "/appointments", user.Token, map[string]interface{}{
		"patient_name": "Walk-in",
		"dentist_id":   dentistID,
		"date":         time.Now().Format("2006-01-02"),
		"time":         "10:00",
	})

	rr := doRequest(ts.r, http.MethodGet, "/dashboard?refresh=true", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	summary := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Equal(t, float64(2), summary["active_patients"])
	assert.Equal(t, float64(1), summary["active_dentists"])
	assert.Equal(t, float64(1), summary["today_appointments"])
	assert.Equal(t, user.ClinicID, summary["clinic_id"])

	require.NoError(t, ts.svc.Dashboard.Refresh(context.Background()))
	snap, ok := ts.svc.Dashboard.Snapshot(user.ClinicID)
	require.True(t, ok)
	assert.Equal(t, int64(2), snap.ActivePatients)

	rr = doRequest(ts.r, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "dental_active_patients")
	assert.Contains(t, rr.Body.String(), user.ClinicID)
}

func TestClinicSettings(t *testing.T) {
	ts, user := SetupServerWithClinic(t)

	rr := doRequest(ts.r, http.MethodGet, "/settings/clinic", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Sonrisa Dental", ParseDataToMap(t, ParseAPIResp(t, rr).Data)["name"])

	rr = doRequest(ts.r, http.MethodPatch, "/settings/clinic", map[string]string{"currency": "USD", "phone_number": "+1 555 0100"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Equal(t, "USD", data["currency"])

	rr = doRequest(ts.r, http.MethodPatch, "/settings/clinic", map[string]string{"currency": "EURO"}, user.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTenantRoutesRequireSession(t *testing.T) {
	ts := SetupTestServer(t)
	for _, path := range []string{"/patients", "/dentists", "/appointments", "/treatments", "/catalog", "/dashboard", "/settings/clinic"} {
		rr := doRequest(ts.r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}
