package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/basis-data-dental/middleware"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// TokenInfo describes a live session.
type TokenInfo struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	ClinicID  string    `json:"clinic_id,omitempty"`
}

// ValidateToken godoc
// @Summary      Validate session token
// @Description  Validate if the session token is valid and not expired
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=TokenInfo} "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /token/validate [get]
func ValidateToken(c *gin.Context) {
	sessionToken := c.GetHeader(middleware.SessionHeader)
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid session token", Err: fmt.Errorf("session token not provided")})
		c.Abort()
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		c.Abort()
		return
	}

	// Join sessions, users, and roles to retrieve the role name aliased as 'role'
	var result struct {
		model.Session
		Email string
		Role  string
	}
	err := db.Table("sessions").
		Select("sessions.*, users.email AS email, roles.name AS role").
		Joins("JOIN users ON sessions.user_id = users.id").
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("session_token = ? AND expires_at > ? AND sessions.deleted_at IS NULL", sessionToken, time.Now()).
		First(&result).Error
	if err != nil {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Session not found", Err: err})
		c.Abort()
		return
	}

	info := TokenInfo{UserID: result.UserID, Email: result.Email, Role: result.Role, ExpiresAt: result.ExpiresAt}
	if identity, err := util.GetUserIdentity(db, result.UserID); err == nil {
		info.ClinicID = identity.ClinicID
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Valid session token", Data: info})
}
