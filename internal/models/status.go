package models

import "strings"

type StatusCode string

const (
	StatusRed     StatusCode = "RED"
	StatusYellow  StatusCode = "YELLOW"
	StatusGreen   StatusCode = "GREEN"
	StatusUnknown StatusCode = "UNKNOWN"
)

// ParseStatusCode normalizes anything outside RED, YELLOW and GREEN to UNKNOWN.
func ParseStatusCode(s string) StatusCode {
	switch StatusCode(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusRed:
		return StatusRed
	case StatusYellow:
		return StatusYellow
	case StatusGreen:
		return StatusGreen
	default:
		return StatusUnknown
	}
}

func (s *StatusCode) UnmarshalText(b []byte) error {
	*s = ParseStatusCode(string(b))
	return nil
}

type StatusColor string

const (
	ColorGreen  StatusColor = "green"
	ColorYellow StatusColor = "yellow"
	ColorRed    StatusColor = "red"
	ColorOff    StatusColor = "off"
)

type IconKind string

const (
	// IconFilled is the filled circle used for the known colors.
	IconFilled IconKind = "circle"
	// IconUnknown marks an unrecognized status code.
	IconUnknown IconKind = "circle-unknown"
)

// DisplayStatus is the display-grade form of a status code.
type DisplayStatus struct {
	Color      StatusColor
	Icon       IconKind
	ReasonText string
}
