package punch

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/location"
	"axiapac.com/attendance/web/common"
	"axiapac.com/attendance/web/middlewares"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	registry *Registry
}

func Register(r *gin.RouterGroup, registry *Registry) {
	endpoint := &Endpoint{registry: registry}
	r.GET("/employees/:employeeId/attendance", endpoint.Get)
	r.POST("/employees/:employeeId/attendance/:action", endpoint.Do)
}

func (ep *Endpoint) Get(c *gin.Context) {
	employeeID, ok := ep.employee(c)
	if !ok {
		return
	}

	session, restored := ep.registry.Get(employeeID)
	if !restored || c.Query("refresh") == "true" {
		if _, err := session.Refresh(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		ep.registry.Save(session)
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(stateDTO(session)))
}

func (ep *Endpoint) Do(c *gin.Context) {
	employeeID, ok := ep.employee(c)
	if !ok {
		return
	}

	action, ok := actions[c.Param("action")]
	if !ok {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("unknown attendance action"))
		return
	}

	var body LocationDTO
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if (body.Latitude == nil) != (body.Longitude == nil) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Fields 'latitude' and 'longitude' must be sent together"))
		return
	}

	ctx := c.Request.Context()
	if !body.empty() {
		ctx = location.NewContext(ctx, body.provider())
	}

	session, restored := ep.registry.Get(employeeID)
	if !restored {
		// nothing known about this employee yet, act on the service's view
		if _, err := session.Refresh(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		ep.registry.Save(session)
	}
	if _, err := session.Do(ctx, action); err != nil {
		writeError(c, err)
		return
	}
	ep.registry.Save(session)

	c.JSON(http.StatusOK, common.NewSuccessResponse(stateDTO(session)))
}

// employee parses the path id and checks the caller may act for that employee.
func (ep *Endpoint) employee(c *gin.Context) (int64, bool) {
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid employee id"))
		return 0, false
	}

	identity := middlewares.GetIdentity(c)
	if identity == nil || (identity.ID != employeeID && !identity.Admin) {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("not allowed to act for this employee"))
		return 0, false
	}
	return employeeID, true
}

func stateDTO(s *attendance.Session) AttendanceStateDTO {
	return AttendanceStateDTO{
		EmployeeID: s.EmployeeID(),
		State:      s.State(),
		Record:     s.Record(),
	}
}

func writeError(c *gin.Context, err error) {
	var (
		lre *attendance.LocationRequiredError
		tip *attendance.TransitionInProgressError
		nae *attendance.ActionNotAllowedError
		se  *attendance.ServiceError
		ise *attendance.InconsistentStateError
	)
	switch {
	case errors.As(err, &lre):
		c.JSON(http.StatusUnprocessableEntity, common.NewCodedErrorResponse("location_required", lre.Error()))
	case errors.As(err, &tip):
		c.JSON(http.StatusConflict, common.NewCodedErrorResponse("transition_in_progress", tip.Error()))
	case errors.As(err, &nae):
		c.JSON(http.StatusConflict, common.NewCodedErrorResponse("action_not_allowed", nae.Error()))
	case errors.As(err, &se):
		c.JSON(http.StatusBadGateway, common.NewCodedErrorResponse("service_error", se.Message))
	case errors.As(err, &ise):
		log.Printf("attendance: %v", ise)
		c.JSON(http.StatusBadGateway, common.NewCodedErrorResponse("inconsistent_state", ise.Error()))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
	}
}
