package console

import (
	"errors"

	"github.com/AbdulKus/jshop-admin/internal/clients"
)

type StatusKind string

const (
	StatusNone  StatusKind = ""
	StatusOK    StatusKind = "ok"
	StatusError StatusKind = "error"
)

// Status is the single status line shown above the console.
type Status struct {
	Message string
	Kind    StatusKind
}

var (
	ErrEmptyBulk       = errors.New("bulk JSON is empty")
	ErrInvalidBulkJSON = errors.New("bulk JSON is invalid")
	ErrNoBulkItems     = errors.New("bulk JSON has no lot list")
)

func (c *Console) setStatus(message string, kind StatusKind) {
	c.mu.Lock()
	c.state.Status = Status{Message: message, Kind: kind}
	c.mu.Unlock()
}

func (c *Console) succeed(message string) {
	c.log.Info(message)
	c.setStatus(message, StatusOK)
}

// fail shows "<prefix>: <err>" and logs it at a level matching the failure:
// transport problems and 5xx answers are errors, everything else a warning.
func (c *Console) fail(prefix string, err error) {
	message := prefix + ": " + err.Error()
	code := clients.StatusCode(err)
	entry := c.log.WithField("status_code", code)
	switch {
	case clients.IsTransport(err):
		entry.Errorf("%s (transport failure)", message)
	case code >= 500:
		entry.Error(message)
	default:
		entry.Warn(message)
	}
	c.setStatus(message, StatusError)
}
