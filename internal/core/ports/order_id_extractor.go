package ports

import (
	"context"
	"errors"
	"fmt"
)

// VisionErrorKind classifies failures of the vision service.
type VisionErrorKind int

const (
	VisionTransient VisionErrorKind = iota
	VisionKeyMissing
	VisionKeyInvalid
	VisionAuthError
	VisionNotFound
)

func (k VisionErrorKind) String() string {
	switch k {
	case VisionKeyMissing:
		return "key_missing"
	case VisionKeyInvalid:
		return "key_invalid"
	case VisionAuthError:
		return "auth_error"
	case VisionNotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// IsFatal reports key related kinds, which block scanning until a new key
// is configured.
func (k VisionErrorKind) IsFatal() bool {
	return k == VisionKeyMissing || k == VisionKeyInvalid || k == VisionAuthError
}

// VisionError is returned by OrderIDExtractor implementations.
type VisionError struct {
	Kind  VisionErrorKind
	Cause error
}

func NewVisionError(kind VisionErrorKind, cause error) *VisionError {
	return &VisionError{Kind: kind, Cause: cause}
}

func (e *VisionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vision %s: %v", e.Kind, e.Cause)
	}
	return "vision " + e.Kind.String()
}

func (e *VisionError) Unwrap() error {
	return e.Cause
}

// VisionErrorKindOf returns the kind of a VisionError in err's chain.
func VisionErrorKindOf(err error) (VisionErrorKind, bool) {
	var ve *VisionError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return VisionTransient, false
}

// OrderIDExtractor reads the raw order identifier printed in an image.
type OrderIDExtractor interface {
	ExtractOrderID(ctx context.Context, image []byte, mimeType string) (string, error)
}

// VisionStatus tells whether scans can currently reach the vision service.
// Blocked is set after a key related failure; Reason holds its kind.
type VisionStatus struct {
	Configured bool
	Blocked    bool
	Reason     VisionErrorKind
	Model      string
}

// VisionKeyManager holds the API key used by the extractor.
type VisionKeyManager interface {
	Status() VisionStatus

	// SetKey replaces the key and clears a previous block.
	SetKey(key string) error
}
