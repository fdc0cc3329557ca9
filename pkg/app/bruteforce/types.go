package bruteforce

import (
	"time"

	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

// Request represents a key search request
type Request struct {
	Target app.PackTarget

	// Search settings
	Jobs             int
	BatchSize        int
	ProgressInterval time.Duration
}

// Response represents the outcome of a key search
type Response struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	Mode       app.Mode `json:"mode" yaml:"mode"`
	PackPath   string   `json:"pack_path,omitempty" yaml:"pack_path,omitempty"`
	BinaryPath string   `json:"binary_path" yaml:"binary_path"`
	Pack       PackInfo `json:"pack" yaml:"pack"`

	Found     bool   `json:"found" yaml:"found"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	KeyOffset int    `json:"key_offset" yaml:"key_offset"`

	Iterations uint64        `json:"iterations" yaml:"iterations"`
	SearchSize int           `json:"search_size" yaml:"search_size"`
	Percent    float64       `json:"percent" yaml:"percent"`
	Workers    int           `json:"workers" yaml:"workers"`
	SearchTime time.Duration `json:"search_time" yaml:"search_time"`
}

// PackInfo represents the decoded header of the searched pack
type PackInfo struct {
	Offset           int    `json:"offset" yaml:"offset"`
	FormatVersion    uint32 `json:"format_version" yaml:"format_version"`
	EngineVersion    string `json:"engine_version" yaml:"engine_version"`
	PackFlags        uint32 `json:"pack_flags" yaml:"pack_flags"`
	FileCount        uint32 `json:"file_count" yaml:"file_count"`
	DeclaredLength   uint64 `json:"declared_length" yaml:"declared_length"`
	CiphertextLength int    `json:"ciphertext_length" yaml:"ciphertext_length"`
}
