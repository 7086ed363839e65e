package commands

import (
	"context"
	"errors"
	"strings"

	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var (
	ErrSetVisionKeyCommandIsNotConstructed = errors.New(
		"SetVisionKeyCommand must be created via NewSetVisionKeyCommand constructor",
	)
	ErrVisionKeyIsRequired = errs.NewValueIsRequiredError("vision api key")
)

// SetVisionKeyCommand supplies a new vision API key after the previous one
// was rejected or never configured.
type SetVisionKeyCommand struct { //nolint:recvcheck //using for validation
	key string

	guard guard.ConstructorGuard
}

func NewSetVisionKeyCommand(key string) (SetVisionKeyCommand, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return SetVisionKeyCommand{}, ErrVisionKeyIsRequired
	}
	return SetVisionKeyCommand{key: key, guard: guard.NewConstructorGuard()}, nil
}

func (c SetVisionKeyCommand) Validate() error {
	return c.guard.Validate(ErrSetVisionKeyCommandIsNotConstructed)
}

func (c SetVisionKeyCommand) Key() string {
	return c.key
}

type SetVisionKeyCommandHandler struct {
	keys ports.VisionKeyManager
}

func NewSetVisionKeyCommandHandler(keys ports.VisionKeyManager) SetVisionKeyCommandHandler {
	return SetVisionKeyCommandHandler{keys: keys}
}

func (h *SetVisionKeyCommandHandler) Handle(_ context.Context, cmd SetVisionKeyCommand) (ports.VisionStatus, error) {
	if err := cmd.Validate(); err != nil {
		return ports.VisionStatus{}, err
	}
	if err := h.keys.SetKey(cmd.Key()); err != nil {
		return ports.VisionStatus{}, err
	}
	return h.keys.Status(), nil
}
