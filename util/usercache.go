package util

import (
	"container/list"
	"sync"

	"github.com/ariebrainware/basis-data-dental/model"
	"gorm.io/gorm"
)

// UserIdentity is what a request needs to know about the signed-in user.
// ClinicID is empty while the user has no profile yet.
type UserIdentity struct {
	UserID   uint
	Email    string
	RoleID   uint32
	ClinicID string
	FullName string
}

type identityLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var identityCache *identityLRU

// InitIdentityCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitIdentityCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	identityCache = &identityLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// IdentityCacheGet returns the cached identity of userID.
func IdentityCacheGet(userID uint) (UserIdentity, bool) {
	if identityCache == nil {
		return UserIdentity{}, false
	}
	identityCache.mu.Lock()
	defer identityCache.mu.Unlock()
	if ele, ok := identityCache.cache[userID]; ok {
		identityCache.ll.MoveToFront(ele)
		return ele.Value.(UserIdentity), true
	}
	return UserIdentity{}, false
}

// IdentityCacheSet stores id, evicting the least recently used entry.
func IdentityCacheSet(id UserIdentity) {
	if identityCache == nil {
		return
	}
	identityCache.mu.Lock()
	defer identityCache.mu.Unlock()
	if ele, ok := identityCache.cache[id.UserID]; ok {
		identityCache.ll.MoveToFront(ele)
		ele.Value = id
		return
	}
	identityCache.cache[id.UserID] = identityCache.ll.PushFront(id)
	if identityCache.ll.Len() > identityCache.capacity {
		if tail := identityCache.ll.Back(); tail != nil {
			delete(identityCache.cache, tail.Value.(UserIdentity).UserID)
			identityCache.ll.Remove(tail)
		}
	}
}

// IdentityCacheDelete forgets userID, used after profile or email changes.
func IdentityCacheDelete(userID uint) {
	if identityCache == nil {
		return
	}
	identityCache.mu.Lock()
	defer identityCache.mu.Unlock()
	if ele, ok := identityCache.cache[userID]; ok {
		identityCache.ll.Remove(ele)
		delete(identityCache.cache, userID)
	}
}

// GetUserIdentity returns the identity of userID using the cache, falling
// back to the users and user_profiles tables. A user without a profile is
// returned with an empty ClinicID and is not cached, so the profile is
// picked up as soon as it exists.
func GetUserIdentity(db *gorm.DB, userID uint) (UserIdentity, error) {
	if id, ok := IdentityCacheGet(userID); ok {
		return id, nil
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		return UserIdentity{}, err
	}
	id := UserIdentity{UserID: user.ID, Email: user.Email, RoleID: user.RoleID}

	var profile model.UserProfile
	err := db.Where("user_id = ? AND status = ?", userID, model.StatusActive).Take(&profile).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return id, nil
	case err != nil:
		return UserIdentity{}, err
	}
	id.ClinicID = profile.ClinicID
	id.FullName = profile.FullName
	if id.ClinicID != "" {
		IdentityCacheSet(id)
	}
	return id, nil
}
