package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/util"
)

// ListPatients godoc
// @Summary      List all patients
// @Description  Get all patients with their latest treatment resolved
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [get]
func ListPatients(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	summaries, err := clinic.NewViews(repo).PatientSummaries(c.Request.Context())
	if err != nil {
		respondEngineError(c, err, "Failed to fetch patients")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients fetched successfully",
		Data: map[string]interface{}{"total": len(summaries), "patients": summaries},
	})
}

// CreatePatient godoc
// @Summary      Register patient
// @Description  Create a patient with a positional D-prefixed id
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.PatientRequest true "Patient data"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid input data"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [post]
func CreatePatient(c *gin.Context) {
	var req model.PatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}
	if req.Name == "" || req.DOB == "" || req.Contact == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Name, date of birth and contact are required",
			Err: fmt.Errorf("missing required fields"),
		})
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	patients, err := repo.Patients(ctx)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch patients")
		return
	}

	patient := model.Patient{
		ID:         repository.NextPatientID(patients),
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		HealthInfo: req.HealthInfo,
	}
	patients = append(patients, patient)
	if err := repo.SavePatients(ctx, patients); err != nil {
		respondEngineError(c, err, "Failed to create patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient created successfully",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient
// @Description  Replace the editable fields of an existing patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Patient ID"
// @Param        request body model.PatientRequest true "Patient data"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid input data"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/{id} [patch]
func UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")
	if patientID == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing patient ID",
			Err: fmt.Errorf("patient ID is required"),
		})
		return
	}

	var req model.PatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid input data") {
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	patients, err := repo.Patients(ctx)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch patients")
		return
	}

	for i := range patients {
		if patients[i].ID != patientID {
			continue
		}
		if req.Name != "" {
			patients[i].Name = req.Name
		}
		if req.DOB != "" {
			patients[i].DOB = req.DOB
		}
		if req.Contact != "" {
			patients[i].Contact = req.Contact
		}
		if req.HealthInfo != "" {
			patients[i].HealthInfo = req.HealthInfo
		}
		if err := repo.SavePatients(ctx, patients); err != nil {
			respondEngineError(c, err, "Failed to update patient")
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Patient updated successfully",
			Data: patients[i],
		})
		return
	}

	util.CallErrorNotFound(c, util.APIErrorParams{
		Msg: "Patient not found",
		Err: fmt.Errorf("patient %s not found", patientID),
	})
}

// DeletePatient godoc
// @Summary      Delete patient
// @Description  Remove a patient; appointments and treatments are kept untouched
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/{id} [delete]
func DeletePatient(c *gin.Context) {
	patientID := c.Param("id")
	if patientID == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing patient ID",
			Err: fmt.Errorf("patient ID is required"),
		})
		return
	}

	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	patients, err := repo.Patients(ctx)
	if err != nil {
		respondEngineError(c, err, "Failed to fetch patients")
		return
	}

	kept := make([]model.Patient, 0, len(patients))
	for _, p := range patients {
		if p.ID != patientID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(patients) {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Patient not found",
			Err: fmt.Errorf("patient %s not found", patientID),
		})
		return
	}

	// Deleting a patient does not cascade; appointments keep the dangling id
	// and render it as missing data.
	if err := repo.SavePatients(ctx, kept); err != nil {
		respondEngineError(c, err, "Failed to delete patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient deleted successfully",
		Data: nil,
	})
}
