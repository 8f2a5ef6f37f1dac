package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
)

// CompressedSuffix marks a snappy-compressed snapshot
const CompressedSuffix = ".sz"

// EncodeSnapshot serialises res as indented JSON, snappy-compressed when
// compress is set
func EncodeSnapshot(res *analysis.Results, compress bool) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if compress {
		return snappy.Encode(nil, data), nil
	}
	return data, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot
func DecodeSnapshot(data []byte, compressed bool) (*analysis.Results, error) {
	if compressed {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
		data = decoded
	}
	res := &analysis.Results{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return res, nil
}

// WriteSnapshot saves res to path. Names ending in .sz are compressed.
func WriteSnapshot(path string, res *analysis.Results) (int, error) {
	data, err := EncodeSnapshot(res, strings.HasSuffix(path, CompressedSuffix))
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write snapshot: %w", err)
	}
	return len(data), nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot
func ReadSnapshot(path string) (*analysis.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(data, strings.HasSuffix(path, CompressedSuffix))
}
