package endpoint_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calendarData struct {
	Date     string `json:"date"`
	Dentists []struct {
		DentistID string `json:"dentist_id"`
		Slots     []struct {
			Time          string `json:"time"`
			State         string `json:"state"`
			AppointmentID string `json:"appointment_id"`
		} `json:"slots"`
	} `json:"dentists"`
}

func slotState(cal calendarData, hhmm string) string {
	for _, s := range cal.Dentists[0].Slots {
		if s.Time == hhmm {
			return s.State
		}
	}
	return ""
}

func fetchCalendar(t *testing.T, ts testServer, token, date string) calendarData {
	t.Helper()
	rr := doRequest(ts.r, http.MethodGet, "/appointments/calendar?date="+date, nil, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var cal calendarData
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &cal))
	require.Len(t, cal.Dentists, 1)
	return cal
}

func TestAppointmentCalendarAndCancel(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	dentistID := createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Lopez"})
	patientID := createEntity(t, ts.r, "/patients", user.Token, map[string]string{"full_name": "Ana Ruiz", "phone_number": "600111222"})

	apptID := createEntity(t, ts.r, "/appointments", user.Token, map[string]interface{}{
		"patient_id": patientID,
		"dentist_id": dentistID,
		"date":       "2026-11-02",
		"time":       "09:00",
		"duration":   60,
		"procedure":  "Cleaning",
	})

	rr := doRequest(ts.r, http.MethodGet, "/appointments?date=2026-11-02", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var page pageData
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &page))
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Ana Ruiz", page.Rows[0]["patient_name"])
	assert.Equal(t, "600111222", page.Rows[0]["patient_phone"])

	cal := fetchCalendar(t, ts, user.Token, "2026-11-02")
	assert.Equal(t, "start", slotState(cal, "09:00"))
	assert.Equal(t, "occupied", slotState(cal, "09:30"))
	assert.Equal(t, "available", slotState(cal, "10:00"))

	rr = doRequest(ts.r, http.MethodPost, "/appointments/"+apptID+"/cancel", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "cancelled", ParseDataToMap(t, ParseAPIResp(t, rr).Data)["status_appointments"])

	cal = fetchCalendar(t, ts, user.Token, "2026-11-02")
	assert.Equal(t, "available", slotState(cal, "09:00"))
}

func TestCreateAppointmentValidation(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	dentistID := createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Lopez"})

	rr := doRequest(ts.r, http.MethodPost, "/appointments", map[string]interface{}{
		"dentist_id": dentistID,
		"date":       "2026-13-40",
		"time":       "9am",
		"duration":   5,
	}, user.Token)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	fields := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	for _, f := range []string{"patient_name", "date", "time", "duration"} {
		assert.Contains(t, fields, f)
	}

	rr = doRequest(ts.r, http.MethodGet, "/appointments/calendar?date=tomorrow", nil, user.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateAndDeleteAppointment(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	dentistID := createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Lopez"})
	apptID := createEntity(t, ts.r, "/appointments", user.Token, map[string]interface{}{
		"patient_name": "Walk-in",
		"dentist_id":   dentistID,
		"date":         "2026-11-02",
		"time":         "11:00",
	})

	rr := doRequest(ts.r, http.MethodPatch, "/appointments/"+apptID, map[string]string{"time": "12:30", "status_appointments": "confirmed"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := ParseDataToMap(t, ParseAPIResp(t, rr).Data)
	assert.Equal(t, "12:30", data["time"])
	assert.Equal(t, "confirmed", data["status_appointments"])

	rr = doRequest(ts.r, http.MethodDelete, "/appointments/"+apptID, nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), ParseDataToMap(t, ParseAPIResp(t, rr).Data)["total"])

	rr = doRequest(ts.r, http.MethodPatch, "/appointments/"+apptID, map[string]string{"time": "13:00"}, user.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDentistList(t *testing.T) {
	ts, user := SetupServerWithClinic(t)
	createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Zamora"})
	id := createEntity(t, ts.r, "/dentists", user.Token, map[string]string{"full_name": "Dr. Alba", "specialty": "orthodontics"})

	rr := doRequest(ts.r, http.MethodGet, "/dentists?all=true", nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(ParseAPIResp(t, rr).Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Dr. Alba", all[0]["full_name"])

	rr = doRequest(ts.r, http.MethodPost, "/dentists", map[string]string{"full_name": "Dr. X", "specialty": "magic"}, user.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(ts.r, http.MethodPatch, "/dentists/"+id, map[string]string{"color": "#ff0000"}, user.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(ts.r, http.MethodDelete, "/dentists/"+id, nil, user.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), listPage(t, ts, "/dentists", user.Token).Total)
}
