package endpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/basis-data-dental/middleware"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sentinel errors for user update operations
var (
	ErrUserEmailAlreadyExists = errors.New("email already exists")
)

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8" example:"newpassword123"`
}

type UpdateEmailRequest struct {
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
}

// hashUserPassword generates a salt and hashes the provided password, updating the user model.
// Returns an error without sending HTTP responses, letting the caller handle the response.
func hashUserPassword(user *model.User, plainPassword string) error {
	salt, err := util.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate password salt: %w", err)
	}

	hashedPassword, err := util.HashPasswordArgon2(plainPassword, salt)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hashedPassword
	user.PasswordSalt = salt
	return nil
}

// emailExists checks whether an email already exists in users table excluding a given user ID.
func emailExists(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ? AND id != ?", email, excludeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// invalidateUserSessions removes session records from both DB and Redis for a given user.
func invalidateUserSessions(ctx context.Context, db *gorm.DB, userID uint) {
	_ = db.Where("user_id = ?", userID).Delete(&model.Session{}).Error
	_ = util.InvalidateUserSessions(ctx, userID)
	util.IdentityCacheDelete(userID)
}

// currentUserOrRespond loads the signed-in user, answering 401/404/500 itself.
func currentUserOrRespond(c *gin.Context) (*model.User, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	userID, ok := userIDOrRespond(c)
	if !ok {
		return nil, false
	}
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return nil, false
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve user", Err: err})
		return nil, false
	}
	return &user, true
}

// checkPasswordOrRespond re-authenticates a sensitive account change.
func checkPasswordOrRespond(c *gin.Context, user *model.User, plain string) bool {
	match, err := util.VerifyPassword(plain, user.Password, user.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return false
	}
	if !match {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid password", Err: fmt.Errorf("provided password does not match")})
		return false
	}
	return true
}

// UpdatePassword godoc
// @Summary      Change password
// @Description  Replace the password of the signed-in user. Every session of the user is closed.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body UpdatePasswordRequest true "Current and new password"
// @Success      200 {object} util.APIResponse "Password updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid password or unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /account/password [patch]
func UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	if !checkPasswordOrRespond(c, user, req.CurrentPassword) {
		return
	}
	if err := hashUserPassword(user, req.NewPassword); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	db := middleware.GetDB(c)
	if err := db.Save(user).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user", Err: err})
		return
	}
	invalidateUserSessions(c.Request.Context(), db, user.ID)

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventPasswordChanged,
		UserID:    userRef(user.ID),
		Email:     user.Email,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Password changed",
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Password updated, please sign in again"})
}

// UpdateEmail godoc
// @Summary      Change email
// @Description  Replace the email of the signed-in user after re-checking the password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body UpdateEmailRequest true "Password and new email"
// @Success      200 {object} util.APIResponse "Email updated"
// @Failure      400 {object} util.APIResponse "Invalid request or email already exists"
// @Failure      401 {object} util.APIResponse "Invalid password or unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /account/email [patch]
func UpdateEmail(c *gin.Context) {
	var req UpdateEmailRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	if !checkPasswordOrRespond(c, user, req.Password) {
		return
	}

	db := middleware.GetDB(c)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == user.Email {
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Email unchanged", Data: user})
		return
	}
	exists, err := emailExists(db, email, user.ID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to validate email uniqueness", Err: err})
		return
	}
	if exists {
		util.CallUserError(c, util.APIErrorParams{Msg: "Email already exists", Err: ErrUserEmailAlreadyExists})
		return
	}

	previous := user.Email
	user.Email = email
	if err := db.Save(user).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user", Err: err})
		return
	}
	util.IdentityCacheDelete(user.ID)

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventEmailChanged,
		UserID:    userRef(user.ID),
		Email:     email,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Email changed",
		Details:   map[string]interface{}{"previous": previous},
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Email updated", Data: user})
}

// ProfileResponse is what the shell needs after sign-in.
type ProfileResponse struct {
	User       model.User         `json:"user"`
	Profile    *model.UserProfile `json:"profile,omitempty"`
	Clinic     *model.Clinic      `json:"clinic,omitempty"`
	NeedsSetup bool               `json:"needs_setup"`
}

// Profile godoc
// @Summary      Current user profile
// @Description  Returns the user, the clinic profile and the clinic. needs_setup is true until the user opened a clinic.
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=ProfileResponse} "Profile retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profile [get]
func Profile(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := servicesOrRespond(c)
	if !ok {
		return
	}

	resp := ProfileResponse{User: *user, NeedsSetup: true}
	profile, found, err := svc.Clinics.Profile(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "Profile")
		return
	}
	if found {
		resp.Profile = &profile
		resp.NeedsSetup = false
		if scope, ok := middleware.GetScope(c); ok {
			clinic, err := svc.Clinics.Get(c.Request.Context(), scope)
			if err != nil {
				respondError(c, err, "Clinic")
				return
			}
			resp.Clinic = &clinic
		}
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: resp})
}

// SetupClinic godoc
// @Summary      Open a clinic
// @Description  Creates the clinic and links the signed-in user to it. Sign in again to pick up the clinic.
// @Tags         Clinic
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body service.SetupRequest true "Clinic details"
// @Success      200 {object} util.APIResponse "Clinic created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      409 {object} util.APIResponse "Already onboarded"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /clinic/setup [post]
func SetupClinic(c *gin.Context) {
	var req service.SetupRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	userID, ok := userIDOrRespond(c)
	if !ok {
		return
	}
	svc, ok := servicesOrRespond(c)
	if !ok {
		return
	}

	clinic, profile, err := svc.Clinics.Setup(c.Request.Context(), userID, c.ClientIP(), req)
	if err != nil {
		respondError(c, err, "Clinic")
		return
	}
	// cached sessions still carry the empty clinic
	if token := c.GetHeader(middleware.SessionHeader); token != "" {
		_ = util.DropSession(c.Request.Context(), userID, token)
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Clinic created",
		Data: gin.H{"clinic": clinic, "profile": profile},
	})
}

// StaffMember is one user working at the clinic.
type StaffMember struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	RoleID   uint32 `json:"role_id"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

// ListStaff godoc
// @Summary      List clinic staff (admin only)
// @Description  Users with an active profile in the caller's clinic
// @Tags         Clinic
// @Produce      json
// @Security     SessionToken
// @Param        keyword query string false "Search keyword for name or email"
// @Success      200 {object} util.APIResponse{data=[]StaffMember} "Staff retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /staff [get]
func ListStaff(c *gin.Context) {
	_, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	query := db.WithContext(c.Request.Context()).Table("user_profiles").
		Select("users.id AS user_id, users.email, users.role_id, user_profiles.full_name, user_profiles.position").
		Joins("JOIN users ON users.id = user_profiles.user_id AND users.deleted_at IS NULL").
		Where("user_profiles.clinic_id = ? AND user_profiles.status = ?", scope.ClinicID(), model.StatusActive)
	if kw := strings.TrimSpace(c.Query("keyword")); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("user_profiles.full_name LIKE ? OR users.email LIKE ?", like, like)
	}

	var staff []StaffMember
	if err := query.Order("user_profiles.full_name ASC").Scan(&staff).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: msgTryAgain, Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Staff retrieved", Data: staff})
}
