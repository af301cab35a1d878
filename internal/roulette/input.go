package roulette

import (
	"errors"
	"strings"
)

var ErrEmptyUsername = errors.New("username is empty")

// InputController owns the raw username text and the inline error message.
type InputController struct {
	username string
	errMsg   string
}

func NewInputController() *InputController {
	return &InputController{}
}

// SetUsername stores text verbatim. Any error message is cleared because
// the user is correcting their input.
func (c *InputController) SetUsername(text string) {
	c.username = text
	c.errMsg = ""
}

func (c *InputController) Username() string {
	return c.username
}

func (c *InputController) Error() string {
	return c.errMsg
}

func (c *InputController) SetError(message string) {
	c.errMsg = message
}

func (c *InputController) ClearError() {
	c.errMsg = ""
}

func (c *InputController) Reset() {
	c.username = ""
	c.errMsg = ""
}

// Validate trims candidate and rejects it when nothing is left.
func Validate(candidate string) (string, error) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return "", ErrEmptyUsername
	}
	return trimmed, nil
}
