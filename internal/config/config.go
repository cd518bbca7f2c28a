package config

import "time"

type ServerModeType string

const (
	ServerModeProd ServerModeType = "prod"
	ServerModeDev  ServerModeType = "dev"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Remote Discovery Store
type Configuration struct {
	Server    Server    `debugmap:"visible"`
	Remote    Remote    `debugmap:"visible"`
	Discovery Discovery `debugmap:"visible"`
	Store     Store     `debugmap:"visible"`

	// Log
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"info"`
}

type Server struct {
	HTTPPort   int    `debugmap:"visible" default:"8090"`
	ServerMode string `debugmap:"visible" default:"dev"`
}

// Remote describes the Lumina server the console talks to.
type Remote struct {
	URL       string        `debugmap:"visible" default:"http://127.0.0.1:8081"`
	Timeout   time.Duration `debugmap:"visible" default:"10s"`
	RateLimit float64       `debugmap:"visible" default:"20"`
	Burst     int           `debugmap:"visible" default:"5"`
}

type Discovery struct {
	Interval   time.Duration `debugmap:"visible" default:"1m"`
	NumWorkers int           `debugmap:"visible" default:"4"`
	Disabled   bool          `debugmap:"visible"`
}

type Store struct {
	DataFolder string `debugmap:"visible"`
}
