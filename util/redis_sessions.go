package util

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/redis/go-redis/v9"
)

// SessionEntry is the cached resolution of a session token.
type SessionEntry struct {
	UserID   uint
	RoleID   uint32
	ClinicID string
}

func (e SessionEntry) encode() string {
	return fmt.Sprintf("%d:%d:%s", e.UserID, e.RoleID, e.ClinicID)
}

func decodeSessionEntry(s string) (SessionEntry, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return SessionEntry{}, fmt.Errorf("malformed session entry %q", s)
	}
	uid, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return SessionEntry{}, fmt.Errorf("malformed session user %q", parts[0])
	}
	rid, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return SessionEntry{}, fmt.Errorf("malformed session role %q", parts[1])
	}
	return SessionEntry{UserID: uint(uid), RoleID: uint32(rid), ClinicID: parts[2]}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

func userSetKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// CacheSession stores the resolution of token for ttl and tracks the token
// in the per-user set. A nil redis client makes this a no-op.
func CacheSession(ctx context.Context, token string, entry SessionEntry, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Set(ctx, sessionKey(token), entry.encode(), ttl).Err(); err != nil {
		return err
	}
	return AddSessionToUserSet(ctx, entry.UserID, token)
}

// LookupSession returns the cached resolution of token. found is false on a
// cache miss or when redis is not configured.
func LookupSession(ctx context.Context, token string) (entry SessionEntry, found bool, err error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return SessionEntry{}, false, nil
	}
	val, err := rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return SessionEntry{}, false, nil
	}
	if err != nil {
		return SessionEntry{}, false, err
	}
	entry, err = decodeSessionEntry(val)
	if err != nil {
		return SessionEntry{}, false, err
	}
	return entry, true, nil
}

// DropSession removes one cached session and its membership in the user set.
func DropSession(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	return RemoveSessionTokenFromUserSet(ctx, userID, token)
}

// AddSessionToUserSet adds the session token to the per-user Redis set.
// The set has no TTL and persists until explicitly cleaned up via
// RemoveSessionTokenFromUserSet or InvalidateUserSessions.
func AddSessionToUserSet(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	if err := rdb.SAdd(ctx, key, token).Err(); err != nil {
		return err
	}
	return rdb.Persist(ctx, key).Err()
}

const removeTokenScript = `
local removed = redis.call('SREM', KEYS[1], ARGV[1])
if removed > 0 then
	if redis.call('SCARD', KEYS[1]) == 0 then
		redis.call('DEL', KEYS[1])
	end
end
return removed
`

// RemoveSessionTokenFromUserSet removes a single session token from the
// per-user set, deleting the set once it is empty.
func RemoveSessionTokenFromUserSet(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Eval(ctx, removeTokenScript, []string{userSetKey(userID)}, token).Err()
}

// InvalidateUserSessions deletes every cached session of the user and the
// per-user set, e.g. after a password change.
func InvalidateUserSessions(ctx context.Context, userID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	members, err := rdb.SMembers(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	for _, tok := range members {
		if err := rdb.Del(ctx, sessionKey(tok)).Err(); err != nil {
			return err
		}
	}
	return rdb.Del(ctx, key).Err()
}
