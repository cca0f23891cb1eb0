package endpoint

import (
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

func appointmentFilter(c *gin.Context) service.AppointmentFilter {
	return service.AppointmentFilter{
		Date:      c.Query("date"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		DentistID: c.Query("dentist_id"),
		PatientID: c.Query("patient_id"),
		Status:    c.Query("status"),
	}
}

// ListAppointments godoc
// @Summary      List appointments
// @Description  Ordered by date and time. date wins over from/to.
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number"
// @Param        page_size query int false "Rows per page (max 100)"
// @Param        date query string false "Exact day, YYYY-MM-DD"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        dentist_id query string false "Dentist ID"
// @Param        patient_id query string false "Patient ID"
// @Param        status query string false "scheduled|confirmed|completed|cancelled"
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Router       /appointments [get]
func ListAppointments(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	page, err := svc.Appointments.List(c.Request.Context(), scope, pageRequest(c), appointmentFilter(c))
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointments retrieved", Data: page})
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Description  Missing patient contact fields are copied from the linked patient
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.CreateAppointmentRequest true "Appointment details"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Router       /appointments [post]
func CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	appt, err := svc.Appointments.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Appointment created", Data: appt})
}

// UpdateAppointment godoc
// @Summary      Update an appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment ID"
// @Param        request body model.UpdateAppointmentRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id} [patch]
func UpdateAppointment(c *gin.Context) {
	var req model.UpdateAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	appt, err := svc.Appointments.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment updated", Data: appt})
}

// CancelAppointment godoc
// @Summary      Cancel an appointment
// @Description  Sets the appointment status to cancelled; the row stays active
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment cancelled"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id}/cancel [post]
func CancelAppointment(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	appt, err := svc.Appointments.Cancel(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment cancelled", Data: appt})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Appointments.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment deleted", Data: gin.H{"total": total}})
}

// AppointmentCalendar godoc
// @Summary      Day calendar
// @Description  Slot grid per dentist. Defaults to today.
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        date query string false "Day, YYYY-MM-DD"
// @Param        dentist_id query string false "Only this dentist"
// @Success      200 {object} util.APIResponse{data=service.Calendar} "Calendar retrieved"
// @Failure      400 {object} util.APIResponse "Invalid date"
// @Router       /appointments/calendar [get]
func AppointmentCalendar(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	cal, err := svc.Appointments.Calendar(c.Request.Context(), scope, c.Query("date"), c.Query("dentist_id"))
	if err != nil {
		respondError(c, err, "Dentist")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Calendar retrieved", Data: cal})
}
