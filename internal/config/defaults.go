package config

import (
	"github.com/dendrascience/treehash/treehash"
	"github.com/dendrascience/treehash/util"
)

const (
	defaultHidden      = "include"
	defaultFormat      = "text"
	defaultLogLevel    = "warn"
	defaultLogFormat   = "auto"
	defaultShowSummary = false
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Workers:       treehash.DefaultWorkers,
			QueueCapacity: treehash.DefaultQueueCapacity,
		},
		Digest: Digest{
			Algorithm: util.DefaultAlgorithm,
			ChunkSize: util.DefaultChunkSize,
		},
		Walk: Walk{
			Hidden: defaultHidden,
		},
		Output: Output{
			Format: defaultFormat,
			Stats:  defaultShowSummary,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
