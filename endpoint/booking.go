package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/scheduling"
	"github.com/dentalops/clinic-api/util"
)

// ListSlots godoc
// @Summary      Daily slot availability
// @Description  The fixed daily grid with each slot flagged taken or free for a date
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Calendar date (2006-01-02)"
// @Success      200 {object} util.APIResponse{data=object} "Slots retrieved"
// @Failure      400 {object} util.APIResponse "Missing or invalid date"
// @Router       /appointment/slots [get]
func ListSlots(c *gin.Context) {
	day, err := scheduling.ParseDay(c.Query("date"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "A valid date query parameter is required",
			Err: err,
		})
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointments, err := repo.Appointments(c.Request.Context())
	if err != nil {
		respondEngineError(c, err, "Failed to fetch appointments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Slots fetched successfully",
		Data: map[string]interface{}{"date": c.Query("date"), "slots": scheduling.Statuses(day, appointments)},
	})
}

// BookAppointment godoc
// @Summary      Book appointment
// @Description  Patient self-booking into a free slot on the daily grid
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.BookingRequest true "Booking data"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment booked"
// @Failure      400 {object} util.APIResponse "Missing slot or invalid date"
// @Failure      409 {object} util.APIResponse "Slot already taken"
// @Router       /appointment/book [post]
func BookAppointment(c *gin.Context) {
	patientID := middleware.GetPatientID(c)
	if patientID == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "No patient id associated with this session",
			Err: fmt.Errorf("patient id missing"),
		})
		return
	}

	var req model.BookingRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	appointment, err := clinic.NewAppointments(repo).Book(c.Request.Context(), patientID, req)
	if err != nil {
		respondEngineError(c, err, "Failed to book appointment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment booked successfully",
		Data: appointment,
	})
}
