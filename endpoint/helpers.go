package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/util"
)

// bindJSONOrRespond binds the request body into dst, answering a user error
// when the payload is malformed.
func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

// getRepoOrRespond fetches the repository injected by the middleware.
func getRepoOrRespond(c *gin.Context) (*repository.Repository, bool) {
	repo := middleware.GetRepository(c)
	if repo == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Storage not available",
			Err: fmt.Errorf("repository is nil"),
		})
		return nil, false
	}
	return repo, true
}

// respondEngineError maps engine errors onto the response envelope:
// validation -> 400, slot conflict -> 409, unresolved id -> 404,
// partial write -> 500 with the inconsistency called out, rest -> 500.
func respondEngineError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case clinic.IsValidation(err):
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
	case clinic.IsSlotConflict(err):
		util.CallConflictError(c, util.APIErrorParams{Msg: "This slot is already taken, please pick another one", Err: err})
	case clinic.IsNotFound(err):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: err.Error(), Err: err})
	case clinic.IsPartialWrite(err):
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Treatment was recorded but the appointment update failed; the reconciler will repair it",
			Err: err,
		})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: fallbackMsg, Err: err})
	}
}

// parsePage reads the 1-indexed page query parameter, defaulting to 1.
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
