package session

import (
	"net/http"
	"sync"
	"time"
)

// Storage is the client-side key/value persistence boundary
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// CookieStorage reads request cookies and writes Set-Cookie headers.
// Writes are kept in an overlay so later reads in the same request see them.
type CookieStorage struct {
	r       *http.Request
	w       http.ResponseWriter
	secure  bool
	maxAge  time.Duration
	mu      sync.Mutex
	overlay map[string]*string // nil value = deleted
}

var _ Storage = (*CookieStorage)(nil)

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool, maxAge time.Duration) *CookieStorage {
	return &CookieStorage{
		r:       r,
		w:       w,
		secure:  secure,
		maxAge:  maxAge,
		overlay: map[string]*string{},
	}
}

func (s *CookieStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.overlay[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	c, err := s.r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStorage) Set(key, value string) {
	s.mu.Lock()
	s.overlay[key] = &value
	s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Expires:  time.Now().Add(s.maxAge),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStorage) Delete(key string) {
	s.mu.Lock()
	s.overlay[key] = nil
	s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MemoryStorage is an in-process Storage
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
