package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/middleware"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/ariebrainware/basis-data-dental/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const msgTryAgain = "An error occurred, please try again"

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		params := util.APIErrorParams{Msg: msg, Err: err}
		if fields, ok := validation.FromBinding(err); ok {
			params.Data = fields
		}
		util.CallUserError(c, params)
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func servicesOrRespond(c *gin.Context) (*service.Services, bool) {
	svc := middleware.GetServices(c)
	if svc == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Services not available", Err: fmt.Errorf("services are nil")})
		return nil, false
	}
	return svc, true
}

func userIDOrRespond(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "User not authenticated", Err: fmt.Errorf("user id not found in context")})
		return 0, false
	}
	return userID, true
}

// tenantOrRespond returns the services and the clinic scope of the request.
func tenantOrRespond(c *gin.Context) (*service.Services, gateway.Scope, bool) {
	svc, ok := servicesOrRespond(c)
	if !ok {
		return nil, gateway.Scope{}, false
	}
	scope, ok := middleware.GetScope(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "No clinic is linked to this account", Err: gateway.ErrScopeUnresolved})
		return nil, gateway.Scope{}, false
	}
	return svc, scope, true
}

// pageRequest reads ?page= and ?page_size=. Missing or bad values fall back
// to the defaults.
func pageRequest(c *gin.Context) gateway.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	if size > 100 {
		size = 100
	}
	return gateway.PageRequest{Page: page, PageSize: size}
}

// respondError maps a service error onto the API envelope. what names the
// entity in not-found messages.
func respondError(c *gin.Context, err error, what string) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid form", Err: err, Data: fields})
	case gateway.IsNotFound(err):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: what + " not found", Err: err})
	case errors.Is(err, service.ErrReadOnlyVersion):
		util.CallConflict(c, util.APIErrorParams{Msg: "Only the latest odontogram version can be edited", Err: err})
	case errors.Is(err, service.ErrAlreadyOnboarded):
		util.CallConflict(c, util.APIErrorParams{Msg: "This account already belongs to a clinic", Err: err})
	case errors.Is(err, gateway.ErrScopeUnresolved):
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "No clinic is linked to this account", Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: msgTryAgain, Err: errors.New("internal error")})
	}
}
