package v1

import (
	"encoding/json"
	"time"
)

// CommandResult is returned by a successful command.
type CommandResult struct {
	Result json.RawMessage `json:"result"`
}

// CommandFailure is returned when the remote host rejected a command or
// could not be reached.
type CommandFailure struct {
	Error         string `json:"error"`
	StatusCode    int    `json:"status_code"`
	StatusText    string `json:"status_text"`
	ServerMessage string `json:"server_message,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}

type DisplayStatus struct {
	Color  string `json:"color"`
	Icon   string `json:"icon"`
	Reason string `json:"reason,omitempty"`
}

type Plugin struct {
	Name          string        `json:"name"`
	Module        string        `json:"module,omitempty"`
	Sequence      int           `json:"sequence"`
	Depends       []string      `json:"depends,omitempty"`
	Doc           string        `json:"doc,omitempty"`
	Status        string        `json:"status"`
	StatusWhy     string        `json:"status_why,omitempty"`
	DisplayStatus DisplayStatus `json:"display_status"`
}

type ConfigEntry struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Default any    `json:"default,omitempty"`
	Type    string `json:"type,omitempty"`
	Help    string `json:"help,omitempty"`
}

type HostLifecycle string

const (
	HostLifecyclePreliminary HostLifecycle = "preliminary"
	HostLifecycleEnriched    HostLifecycle = "enriched"
)

type Host struct {
	HostId        string        `json:"hostid"`
	Hostname      string        `json:"hostname"`
	NodeName      string        `json:"node_name,omitempty"`
	Lifecycle     HostLifecycle `json:"lifecycle"`
	Root          bool          `json:"root"`
	Status        string        `json:"status"`
	StatusWhy     string        `json:"status_why,omitempty"`
	DisplayStatus DisplayStatus `json:"display_status"`
	StartTime     *time.Time    `json:"starttime,omitempty"`
	Plugins       []Plugin      `json:"plugins,omitempty"`
	Config        []ConfigEntry `json:"config,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type HostList struct {
	Hosts []Host `json:"hosts"`
	Total int    `json:"total"`
}

// HostUpdate is one message of the directory watch stream.
type HostUpdate struct {
	Host              Host           `json:"host"`
	PreviousLifecycle *HostLifecycle `json:"previous_lifecycle,omitempty"`
}

type DiscoveryStatus struct {
	State      string     `json:"state"`
	Error      string     `json:"error,omitempty"`
	Dispatched int        `json:"dispatched"`
	InFlight   int        `json:"in_flight"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
}

type DebugTrace struct {
	Stage string `json:"stage"`
	Log   string `json:"log"`
}

type DebugSuccessRequest struct {
	Line string `json:"line"`
}

type ResolveStatusParams struct {
	Status string `form:"status"`
	Reason string `form:"reason"`
}
