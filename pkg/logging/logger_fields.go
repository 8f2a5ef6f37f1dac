package logging

import (
	"time"
)

// Typed field constructors
func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration is logged in its String form ("1.5s")
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error logs err under "error"; a nil error logs null
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Names used across the analysis pipeline, kept here so every log line
// agrees on them
const (
	KeyComponent = "component"
	KeyRunID     = "run_id"
	KeyDataset   = "dataset"
	KeyKind      = "kind"
	KeyFormat    = "format"
	KeyAlgorithm = "algorithm"
	KeyPath      = "path"
	KeyCount     = "count"
	KeyLatency   = "latency"
)

func Component(name string) Field { return String(KeyComponent, name) }

func RunID(id string) Field { return String(KeyRunID, id) }

func Dataset(name string) Field { return String(KeyDataset, name) }

// Kind is the dataset kind, social or citation
func Kind(kind string) Field { return String(KeyKind, kind) }

// Format is the on-disk dataset format
func Format(format string) Field { return String(KeyFormat, format) }

func Algorithm(name string) Field { return String(KeyAlgorithm, name) }

func Path(p string) Field { return String(KeyPath, p) }

func Count(n int) Field { return Int(KeyCount, n) }

func Latency(d time.Duration) Field { return Duration(KeyLatency, d) }
