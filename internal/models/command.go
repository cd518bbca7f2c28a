package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProtocolViolation is returned when a reply lacks the result envelope.
	ErrProtocolViolation = errors.New("reply is missing the result envelope")
)

// Command is a logical command addressed to a host. An empty Target addresses the
// host the console is directly talking to.
type Command struct {
	Target string
	Name   string
	Args   []any
}

func NewCommand(target, name string, args ...any) Command {
	return Command{Target: target, Name: name, Args: args}
}

// ParseCommand splits a hierarchical path like "node/_info" into target and name.
// Paths without a separator address the local host.
func ParseCommand(path string, args ...any) Command {
	path = strings.Trim(path, "/")
	if target, name, ok := strings.Cut(path, "/"); ok {
		return NewCommand(target, name, args...)
	}
	return NewCommand("", path, args...)
}

// Path returns the wire path. Target and name are used verbatim.
func (c Command) Path() string {
	if c.Target != "" {
		return c.Target + "/" + c.Name
	}
	return c.Name
}

// CommandError is the failure outcome of a command.
type CommandError struct {
	Path          string
	StatusCode    int
	StatusText    string
	ServerMessage string
	Err           error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed: %d %s", e.Path, e.StatusCode, e.StatusText)
	if e.ServerMessage != "" {
		msg += ": " + e.ServerMessage
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
