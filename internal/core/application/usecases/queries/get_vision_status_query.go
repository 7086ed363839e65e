package queries

import (
	"context"

	"scantrack/internal/core/ports"
)

// GetVisionStatusQueryHandler reports whether scans can reach the vision
// service. It takes no query.
type GetVisionStatusQueryHandler struct {
	keys ports.VisionKeyManager
}

func NewGetVisionStatusQueryHandler(keys ports.VisionKeyManager) GetVisionStatusQueryHandler {
	return GetVisionStatusQueryHandler{keys: keys}
}

func (h GetVisionStatusQueryHandler) Handle(_ context.Context) ports.VisionStatus {
	return h.keys.Status()
}
