package config

import "time"

// Database and Performance Constants
const (
	DefaultQueryTimeout = 30 * time.Second
	BatchQueryTimeout   = 60 * time.Second
	RankingQueryTimeout = 45 * time.Second
	NetworkDialTimeout  = 5 * time.Second

	DialRetries       = 3
	DialRetryInterval = time.Second
)

// API Constants
const (
	ShutdownTimeout  = 10 * time.Second
	RequestBodyLimit = 4 * 1024 * 1024
	MaxBatchRequests = 10000
	ReadTimeout      = 10 * time.Second
)

const DefaultConfigPath = "config.toml"
