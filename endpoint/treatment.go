package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/util"
)

// ListTreatments godoc
// @Summary      Treatment registry
// @Description  All treatments with the owning appointment's patient id resolved, filterable by substring
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        appointment_id query string false "Substring filter on appointment id"
// @Param        patient_id query string false "Substring filter on resolved patient id"
// @Success      200 {object} util.APIResponse{data=object} "Treatments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /treatment [get]
func ListTreatments(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	rows, err := clinic.NewViews(repo).TreatmentRegistry(
		c.Request.Context(),
		c.Query("appointment_id"),
		c.Query("patient_id"),
	)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch treatments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatments fetched successfully",
		Data: map[string]interface{}{"total": len(rows), "treatments": rows},
	})
}

// ListTreatmentCandidates godoc
// @Summary      Appointments open for treatment
// @Description  Appointments not yet Completed, offered for treatment recording
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=object} "Candidates retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /treatment/candidates [get]
func ListTreatmentCandidates(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	candidates, err := clinic.NewTreatments(repo).Candidates(c.Request.Context())
	if err != nil {
		respondEngineError(c, err, "Failed to fetch candidate appointments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Candidate appointments fetched successfully",
		Data: map[string]interface{}{"total": len(candidates), "appointments": candidates},
	})
}

// CreateTreatment godoc
// @Summary      Record treatment
// @Description  Record a treatment against a non-completed appointment; marks it Completed and copies the files
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.TreatmentRequest true "Treatment data"
// @Success      200 {object} util.APIResponse{data=model.Treatment} "Treatment recorded"
// @Failure      400 {object} util.APIResponse "Missing appointment or description"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Partial write, reconciler will repair"
// @Router       /treatment [post]
func CreateTreatment(c *gin.Context) {
	var req model.TreatmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	treatment, err := clinic.NewTreatments(repo).Record(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err, "Failed to record treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment recorded and appointment marked as completed",
		Data: treatment,
	})
}
