package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Commands counts executed commands by outcome (success, failure, protocol_violation).
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumina_console_commands_total",
		Help: "Total number of commands executed by outcome",
	}, []string{"outcome"})

	// CommandDuration tracks the round trip time of commands.
	CommandDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lumina_console_command_duration_seconds",
		Help:    "Round trip time of commands",
		Buckets: prometheus.DefBuckets,
	})

	// DiscoveryPasses counts discovery passes by result.
	DiscoveryPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumina_console_discovery_passes_total",
		Help: "Total number of discovery passes by result",
	}, []string{"result"})

	// NodeFetches counts per-node host info fetches by result.
	NodeFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumina_console_node_fetches_total",
		Help: "Total number of per-node host info fetches by result",
	}, []string{"result"})

	// DirectoryHosts tracks the number of hosts in the directory by lifecycle.
	DirectoryHosts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lumina_console_directory_hosts",
		Help: "Current number of hosts in the directory",
	}, []string{"lifecycle"})

	// RejectedDowngrades counts upserts rejected because they would downgrade a record.
	RejectedDowngrades = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumina_console_directory_rejected_downgrades_total",
		Help: "Upserts rejected because they would downgrade an enriched record",
	})

	// DroppedUpdates counts directory updates dropped for slow subscribers.
	DroppedUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumina_console_directory_dropped_updates_total",
		Help: "Directory updates dropped because a subscriber did not keep up",
	})
)
