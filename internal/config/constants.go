package config

import "time"

const (
	// ConfigPathSpinPolicy is the default spin policy file
	ConfigPathSpinPolicy = "configs/spin.yaml"
)

// Database pool defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = time.Hour
)

// Background processing defaults
const (
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "logs/deadletter.jsonl"
	DefaultWorkerCount     = 2
	DefaultWorkerQueueSize = 16
)

// Error messages for spin policy validation
const (
	ErrMsgReadSpinPolicy   = "failed to read spin policy"
	ErrMsgParseSpinPolicy  = "failed to parse spin policy"
	ErrMsgInvalidTimezone  = "invalid spin policy timezone"
	ErrMsgInvalidPolicy    = "invalid spin policy"
)
