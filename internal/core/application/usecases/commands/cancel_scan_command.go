package commands

import (
	"errors"
	"strings"

	"scantrack/internal/pkg/guard"
)

var ErrCancelScanCommandIsNotConstructed = errors.New(
	"CancelScanCommand must be created via NewCancelScanCommand constructor",
)

// CancelScanCommand dismisses the decision a client was asked to make.
type CancelScanCommand struct { //nolint:recvcheck //using for validation
	clientID string

	guard guard.ConstructorGuard
}

func NewCancelScanCommand(clientID string) (CancelScanCommand, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return CancelScanCommand{}, ErrClientIDIsRequired
	}
	return CancelScanCommand{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelScanCommand) Validate() error {
	return c.guard.Validate(ErrCancelScanCommandIsNotConstructed)
}

func (c CancelScanCommand) ClientID() string {
	return c.clientID
}

// CancelScanCommandHandler closes the scan session; storage is not touched.
type CancelScanCommandHandler struct {
	sessions *ScanSessions
}

func NewCancelScanCommandHandler(sessions *ScanSessions) CancelScanCommandHandler {
	return CancelScanCommandHandler{sessions: sessions}
}

// Handle fails with ErrNoPendingScan when nothing was open.
func (h *CancelScanCommandHandler) Handle(cmd CancelScanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !h.sessions.Cancel(cmd.ClientID()) {
		return ErrNoPendingScan
	}
	return nil
}
