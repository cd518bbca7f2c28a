package models

import "time"

// DiscoveryState represents the progress of the most recent discovery pass.
type DiscoveryState string

const (
	// DiscoveryStateIdle - no pass has run yet
	DiscoveryStateIdle DiscoveryState = "idle"
	// DiscoveryStateStarted - fetching the root host info
	DiscoveryStateStarted DiscoveryState = "started"
	// DiscoveryStateRootKnown - root recorded, fetching the server's node list
	DiscoveryStateRootKnown DiscoveryState = "root_known"
	// DiscoveryStateEnumerated - node fetches dispatched
	DiscoveryStateEnumerated DiscoveryState = "enumerated"
	// DiscoveryStateError - root or server info could not be fetched
	DiscoveryStateError DiscoveryState = "error"
)

// DiscoveryStatus holds the state of the last pass and metadata.
type DiscoveryStatus struct {
	State      DiscoveryState
	Error      string
	Dispatched int
	InFlight   int
	StartedAt  time.Time
}

// HostUpdate is published by the directory each time a record is stored.
type HostUpdate struct {
	Record   HostRecord
	Previous *HostRecord
}
