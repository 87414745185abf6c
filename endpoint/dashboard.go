package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/util"
)

// Dashboard godoc
// @Summary      Role-scoped dashboard
// @Description  Upcoming appointments and most recent treatments; patients only see their own records
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "1-indexed page, clamped into range"
// @Success      200 {object} util.APIResponse{data=clinic.DashboardView} "Dashboard built"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard [get]
func Dashboard(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	view, err := clinic.NewViews(repo).Dashboard(
		c.Request.Context(),
		middleware.GetRole(c),
		middleware.GetPatientID(c),
		parsePage(c),
	)
	if err != nil {
		respondEngineError(c, err, "Failed to build dashboard")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Dashboard fetched successfully",
		Data: view,
	})
}

// CalendarEvents godoc
// @Summary      Calendar events
// @Description  Every appointment projected as a half-hour event with its status
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=object} "Events retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /calendar [get]
func CalendarEvents(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	events, err := clinic.NewViews(repo).CalendarEvents(c.Request.Context())
	if err != nil {
		respondEngineError(c, err, "Failed to fetch calendar events")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Calendar events fetched successfully",
		Data: map[string]interface{}{"total": len(events), "events": events},
	})
}
