package models

import (
	"encoding/json"
	"time"
)

type Lifecycle string

const (
	// LifecyclePreliminary - record guessed from the server's node list
	LifecyclePreliminary Lifecycle = "preliminary"
	// LifecycleEnriched - record populated from a successful host info fetch
	LifecycleEnriched Lifecycle = "enriched"
)

// Rank orders lifecycles so that a transition can only move forward.
func (l Lifecycle) Rank() int {
	switch l {
	case LifecycleEnriched:
		return 1
	default:
		return 0
	}
}

// HostRecord is what the console knows about one host.
type HostRecord struct {
	HostID    string
	Hostname  string
	NodeName  string
	Lifecycle Lifecycle
	Root      bool
	Status    StatusCode
	StatusWhy string
	StartTime *time.Time
	Plugins   []PluginInfo
	Config    []ConfigEntry
	Raw       json.RawMessage
	UpdatedAt time.Time
}

func (h HostRecord) IsEnriched() bool {
	return h.Lifecycle == LifecycleEnriched
}

type PluginInfo struct {
	Name     string     `json:"name"`
	Module   string     `json:"module,omitempty"`
	Sequence int        `json:"sequence,omitempty"`
	Depends  []string   `json:"depends,omitempty"`
	Doc      string     `json:"doc,omitempty"`
	Status   StatusCode `json:"status"`
	Reason   string     `json:"status_why,omitempty"`
}

type ConfigEntry struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Default any    `json:"default,omitempty"`
	Type    string `json:"type,omitempty"`
	Help    string `json:"help,omitempty"`
}

// HostInfo is the payload of a host's "_info" command.
type HostInfo struct {
	HostID    string        `json:"hostid"`
	Hostname  string        `json:"hostname"`
	Plugins   []PluginInfo  `json:"plugins"`
	Config    []ConfigEntry `json:"config"`
	Status    StatusCode    `json:"status"`
	StatusWhy string        `json:"status_why"`
	StartTime *time.Time    `json:"starttime,omitempty"`
}

// NodeDescriptor is one entry of the server's node list.
type NodeDescriptor struct {
	Name         string     `json:"name"`
	NodeID       string     `json:"nodeid,omitempty"`
	HostID       *string    `json:"hostid"`
	Hostname     string     `json:"hostname"`
	Module       string     `json:"module,omitempty"`
	Sequence     int        `json:"sequence,omitempty"`
	Status       StatusCode `json:"status,omitempty"`
	StatusWhy    string     `json:"status_why,omitempty"`
	Link         StatusCode `json:"link,omitempty"`
	LinkWhy      string     `json:"link_why,omitempty"`
	Commands     []string   `json:"commands,omitempty"`
	Events       []string   `json:"events,omitempty"`
	Connected    bool       `json:"connected"`
	LastActivity *time.Time `json:"lastactivity,omitempty"`
}

// Discoverable reports whether the node can be asked for its host info.
func (n NodeDescriptor) Discoverable() bool {
	return n.HostID != nil && *n.HostID != "" && n.Connected
}

// ServerInfo is the payload of the "_server" command.
type ServerInfo struct {
	Hosts     []string         `json:"hosts"`
	Nodes     []NodeDescriptor `json:"nodes"`
	NCommands int              `json:"n_commands"`
	NEvents   int              `json:"n_events"`
	Status    StatusCode       `json:"status"`
	StatusWhy string           `json:"status_why"`
}
