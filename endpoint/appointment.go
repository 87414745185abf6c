package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/util"
)

// ListAppointments godoc
// @Summary      List appointments
// @Description  Management table over all appointments, filterable and paginated
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id query string false "Substring filter on patient id"
// @Param        date query string false "Prefix filter on the appointment timestamp"
// @Param        page query int false "1-indexed page, clamped into range"
// @Success      200 {object} util.APIResponse{data=clinic.AppointmentTable} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment [get]
func ListAppointments(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	table, err := clinic.NewViews(repo).AppointmentTable(
		c.Request.Context(),
		c.Query("patient_id"),
		c.Query("date"),
		parsePage(c),
	)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch appointments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments fetched successfully",
		Data: table,
	})
}

// CreateAppointment godoc
// @Summary      Add direct appointment
// @Description  Create an appointment for a patient at an arbitrary timestamp, slot grid not consulted
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.AppointmentRequest true "Appointment data"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Missing patient or date"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /appointment [post]
func CreateAppointment(c *gin.Context) {
	var req model.AppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointment, err := clinic.NewAppointments(repo).CreateDirect(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err, "Failed to create appointment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment created successfully",
		Data: appointment,
	})
}

// UpdateAppointmentField godoc
// @Summary      Edit appointment field
// @Description  In-place update of one mutable field; cost clamps to a non-negative integer
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Param        request body model.FieldEditRequest true "Field and value"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      400 {object} util.APIResponse "Field not editable"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/field [patch]
func UpdateAppointmentField(c *gin.Context) {
	var req model.FieldEditRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointment, err := clinic.NewAppointments(repo).EditField(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		respondEngineError(c, err, "Failed to update appointment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated successfully",
		Data: appointment,
	})
}

// UpdateAppointmentStatus godoc
// @Summary      Confirm or revert appointment status
// @Description  Idempotent status write; only the Pending/Completed pair is reachable
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Param        request body model.StatusRequest true "Target status"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Status updated"
// @Failure      400 {object} util.APIResponse "Transition not allowed"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/status [patch]
func UpdateAppointmentStatus(c *gin.Context) {
	var req model.StatusRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointment, err := clinic.NewAppointments(repo).SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondEngineError(c, err, "Failed to update appointment status")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment status updated successfully",
		Data: appointment,
	})
}

// DeleteAppointment godoc
// @Summary      Delete appointment
// @Description  Remove an appointment; treatments referencing it are kept in storage
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	if err := clinic.NewAppointments(repo).Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err, "Failed to delete appointment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment deleted successfully",
		Data: nil,
	})
}

// MyAppointments godoc
// @Summary      List own appointments
// @Description  All appointments belonging to the authenticated patient
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=object} "Appointments retrieved"
// @Failure      400 {object} util.APIResponse "No patient id on the session"
// @Router       /appointment/mine [get]
func MyAppointments(c *gin.Context) {
	patientID := middleware.GetPatientID(c)
	if patientID == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "No patient id associated with this session",
			Err: fmt.Errorf("patient id missing"),
		})
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointments, err := clinic.NewViews(repo).PatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch appointments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments fetched successfully",
		Data: map[string]interface{}{"total": len(appointments), "appointments": appointments},
	})
}
