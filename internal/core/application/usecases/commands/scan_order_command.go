package commands

import (
	"errors"
	"strings"

	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var (
	ErrScanOrderCommandIsNotConstructed = errors.New(
		"ScanOrderCommand must be created via NewScanOrderCommand constructor",
	)
	ErrImageIsRequired = errs.NewValueIsRequiredError("image")
)

// MaxImageSize caps the photo of one scan, in bytes.
const MaxImageSize = 10 << 20

// ScanOrderCommand carries one photo of an order ticket taken by a client.
//
// Example:
//
//	cmd, err := NewScanOrderCommand("tablet-1", jpegBytes, "image/jpeg")
//	if err != nil {
//	    return fmt.Errorf("invalid scan: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type ScanOrderCommand struct { //nolint:recvcheck //using for validation
	clientID string
	image    []byte
	mimeType string

	guard guard.ConstructorGuard
}

// NewScanOrderCommand validates the client id and the image payload. An
// empty mime type defaults to image/jpeg.
func NewScanOrderCommand(clientID string, image []byte, mimeType string) (ScanOrderCommand, error) {
	cmd := ScanOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setImage(image),
	); err != nil {
		return ScanOrderCommand{}, err
	}

	cmd.mimeType = strings.TrimSpace(mimeType)
	if cmd.mimeType == "" {
		cmd.mimeType = "image/jpeg"
	}
	return cmd, nil
}

func (c ScanOrderCommand) Validate() error {
	return c.guard.Validate(ErrScanOrderCommandIsNotConstructed)
}

func (c ScanOrderCommand) ClientID() string {
	return c.clientID
}

func (c ScanOrderCommand) Image() []byte {
	return c.image
}

func (c ScanOrderCommand) MimeType() string {
	return c.mimeType
}

func (c *ScanOrderCommand) setClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ErrClientIDIsRequired
	}
	c.clientID = clientID
	return nil
}

func (c *ScanOrderCommand) setImage(image []byte) error {
	if len(image) == 0 {
		return ErrImageIsRequired
	}
	if len(image) > MaxImageSize {
		return errs.NewValueIsOutOfRangeError("image size", len(image), 1, MaxImageSize)
	}
	c.image = image
	return nil
}
