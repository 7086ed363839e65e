package vision

import (
	"strings"
	"sync"

	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"
)

// KeyStore holds the vision API key. Once a key is rejected it is blocked
// and every scan fails fast until SetKey supplies a new one.
type KeyStore struct {
	mu      sync.RWMutex
	key     string
	blocked bool
	reason  ports.VisionErrorKind
	model   string
}

func NewKeyStore(key, model string) *KeyStore {
	return &KeyStore{key: strings.TrimSpace(key), model: model}
}

// Key returns the usable key or a fatal VisionError.
func (s *KeyStore) Key() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.key == "":
		return "", ports.NewVisionError(ports.VisionKeyMissing, errs.NewAuthError("vision", "no api key configured"))
	case s.blocked:
		return "", ports.NewVisionError(s.reason, errs.NewAuthError("vision", "api key was rejected, supply a new one"))
	default:
		return s.key, nil
	}
}

// Invalidate blocks the current key after a key related failure.
func (s *KeyStore) Invalidate(kind ports.VisionErrorKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = true
	s.reason = kind
}

func (s *KeyStore) SetKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("vision api key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.blocked = false
	s.reason = ports.VisionTransient
	return nil
}

func (s *KeyStore) Status() ports.VisionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := ports.VisionStatus{
		Configured: s.key != "",
		Blocked:    s.key == "" || s.blocked,
		Model:      s.model,
	}
	switch {
	case s.key == "":
		status.Reason = ports.VisionKeyMissing
	case s.blocked:
		status.Reason = s.reason
	}
	return status
}
