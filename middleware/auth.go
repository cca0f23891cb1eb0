package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionHeader carries the token returned by login.
const SessionHeader = "session-token"

// auditIP is the address written into audit columns. Loopback clients are
// replaced by the clinic's public address when a resolver is set.
func auditIP(c *gin.Context, resolver *util.IPResolver) string {
	if resolver == nil {
		return c.ClientIP()
	}
	return resolver.Resolve(c.Request.Context(), c.ClientIP())
}

var errNoSession = errors.New("session not found or expired")

// resolveSession maps a token to its user, first through redis then through
// the sessions table. Entries found in the table are cached back into redis
// for the rest of their lifetime.
func resolveSession(c *gin.Context, db *gorm.DB, token string) (util.UserIdentity, error) {
	ctx := c.Request.Context()
	if entry, found, err := util.LookupSession(ctx, token); err == nil && found {
		id, err := util.GetUserIdentity(db, entry.UserID)
		if err != nil {
			return util.UserIdentity{}, err
		}
		return id, nil
	}

	var session model.Session
	err := db.WithContext(ctx).
		Where("session_token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.UserIdentity{}, errNoSession
	}
	if err != nil {
		return util.UserIdentity{}, err
	}

	id, err := util.GetUserIdentity(db, session.UserID)
	if err != nil {
		return util.UserIdentity{}, err
	}
	_ = util.CacheSession(ctx, token, util.SessionEntry{
		UserID:   id.UserID,
		RoleID:   id.RoleID,
		ClinicID: id.ClinicID,
	}, time.Until(session.ExpiresAt))
	return id, nil
}

// ValidateLoginToken authenticates the session-token header. On success the
// user and role ids are stored in the context, plus the tenant scope when the
// user already belongs to a clinic.
func ValidateLoginToken(resolver *util.IPResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			util.LogUnauthorizedAccess("", "", c.ClientIP(), c.Request.URL.Path, "missing session token")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token not provided",
				Err: fmt.Errorf("session token not provided"),
			})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		id, err := resolveSession(c, db, token)
		if err != nil {
			util.LogUnauthorizedAccess("", "", c.ClientIP(), c.Request.URL.Path, err.Error())
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired session",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(RoleIDKey, id.RoleID)
		c.Set(EmailKey, id.Email)
		if id.ClinicID != "" {
			scope, err := gateway.NewScope(id.ClinicID, strconv.FormatUint(uint64(id.UserID), 10), auditIP(c, resolver))
			if err == nil {
				c.Set(ScopeKey, scope)
			}
		}
		c.Next()
	}
}

// RequireClinic stops requests from users that have not joined a clinic yet.
func RequireClinic() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetScope(c); !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "No clinic is linked to this account",
				Err: gateway.ErrScopeUnresolved,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...uint32) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, ok := GetRoleID(c)
		if ok {
			for _, r := range roles {
				if r == roleID {
					c.Next()
					return
				}
			}
		}
		userID, _ := GetUserID(c)
		util.LogUnauthorizedAccess(strconv.FormatUint(uint64(userID), 10), "", c.ClientIP(), c.Request.URL.Path, "role not allowed")
		util.CallForbidden(c, util.APIErrorParams{
			Msg: "You are not allowed to perform this action",
			Err: fmt.Errorf("role %d not allowed", roleID),
		})
		c.Abort()
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetRoleID returns the authenticated user's role.
func GetRoleID(c *gin.Context) (uint32, bool) {
	v, ok := c.Get(RoleIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint32)
	return id, ok
}

// GetScope returns the tenant scope of the request.
func GetScope(c *gin.Context) (gateway.Scope, bool) {
	v, ok := c.Get(ScopeKey)
	if !ok {
		return gateway.Scope{}, false
	}
	s, ok := v.(gateway.Scope)
	return s, ok && s.Valid()
}
