package util

import (
	"container/list"
	"fmt"
	"os"
	"strconv"
	"sync"

	"gorm.io/gorm"
)

// LRU cache for "role:id" -> email, used to annotate endpoint-call events
// without a DB round trip per request.
type accountEntry struct {
	key   string
	email string
}

type accountLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[string]*list.Element
	capacity int
}

var accountCache *accountLRU

// InitAccountEmailCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitAccountEmailCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	accountCache = &accountLRU{
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
		capacity: capacity,
	}
}

func accountCacheKey(role string, accountID uint) string {
	return fmt.Sprintf("%s:%d", role, accountID)
}

// AccountEmailCacheGet returns email and true if present in cache.
func AccountEmailCacheGet(role string, accountID uint) (string, bool) {
	if accountCache == nil {
		return "", false
	}
	accountCache.mu.Lock()
	defer accountCache.mu.Unlock()
	if ele, ok := accountCache.cache[accountCacheKey(role, accountID)]; ok {
		accountCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(accountEntry); ok {
			return e.email, true
		}
	}
	return "", false
}

// AccountEmailCacheSet sets the email for an account in the cache.
func AccountEmailCacheSet(role string, accountID uint, email string) {
	if accountCache == nil {
		return
	}
	key := accountCacheKey(role, accountID)
	accountCache.mu.Lock()
	defer accountCache.mu.Unlock()
	if ele, ok := accountCache.cache[key]; ok {
		accountCache.ll.MoveToFront(ele)
		ele.Value = accountEntry{key: key, email: email}
		return
	}
	ele := accountCache.ll.PushFront(accountEntry{key: key, email: email})
	accountCache.cache[key] = ele
	if accountCache.ll.Len() > accountCache.capacity {
		tail := accountCache.ll.Back()
		if tail != nil {
			if e, ok := tail.Value.(accountEntry); ok {
				delete(accountCache.cache, e.key)
			}
			accountCache.ll.Remove(tail)
		}
	}
}

// GetAccountEmail returns the email for a patient or doctor account using the
// cache, falling back to the corresponding table. If found in DB, caches the
// result.
func GetAccountEmail(db *gorm.DB, role string, accountID uint) string {
	if accountID == 0 {
		return ""
	}
	if email, ok := AccountEmailCacheGet(role, accountID); ok {
		return email
	}
	if db == nil {
		return ""
	}

	table := ""
	switch role {
	case RolePatient:
		table = "patients"
	case RoleDoctor:
		table = "doctors"
	default:
		return ""
	}

	var row struct{ Email string }
	if err := db.Table(table).Select("email").Where("id = ?", accountID).Take(&row).Error; err == nil {
		if row.Email != "" {
			AccountEmailCacheSet(role, accountID, row.Email)
		}
		return row.Email
	}
	return ""
}

// InitAccountEmailCacheFromEnv initializes the cache using the env var ACCOUNT_EMAIL_CACHE_SIZE
func InitAccountEmailCacheFromEnv() {
	sizeStr := os.Getenv("ACCOUNT_EMAIL_CACHE_SIZE")
	if sizeStr == "" {
		InitAccountEmailCache(0)
		return
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		InitAccountEmailCache(0)
		return
	}
	InitAccountEmailCache(size)
}
