package app

import (
	"errors"
	"fmt"
	"time"
)

// Mode selects where the encrypted pack comes from
type Mode string

const (
	// ModeStandalone reads the pack from its own file and searches a separate binary
	ModeStandalone Mode = "pck"
	// ModeEmbedded reads the pack embedded at the end of the searched binary
	ModeEmbedded Mode = "embedded"
)

// PackTarget represents the input files of a search
type PackTarget struct {
	Mode       Mode
	PackPath   string
	BinaryPath string
}

// Validate ensures the target names the files its mode needs
func (pt *PackTarget) Validate() error {
	switch pt.Mode {
	case ModeStandalone:
		if pt.PackPath == "" {
			return errors.New("pack path is required")
		}
		if pt.BinaryPath == "" {
			return errors.New("binary path is required")
		}
	case ModeEmbedded:
		if pt.BinaryPath == "" {
			return errors.New("binary path is required")
		}
		if pt.PackPath != "" && pt.PackPath != pt.BinaryPath {
			return errors.New("embedded mode reads the pack from the binary itself")
		}
	default:
		return fmt.Errorf("unknown mode %q", pt.Mode)
	}
	return nil
}

// String returns a string representation of the target
func (pt *PackTarget) String() string {
	if pt.Mode == ModeEmbedded {
		return "Embedded pack in " + pt.BinaryPath
	}
	return fmt.Sprintf("Pack %s, binary %s", pt.PackPath, pt.BinaryPath)
}

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   uint64
	Total       uint64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime <= 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// ETA estimates time to completion
func (p *ProgressUpdate) ETA() time.Duration {
	rate := p.Rate()
	if rate == 0 || p.Completed >= p.Total {
		return 0
	}
	remaining := p.Total - p.Completed
	return time.Duration(float64(remaining) / rate * float64(time.Second))
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeContainerAccess = "CONTAINER_ACCESS"
	ErrCodeSearchFailed    = "SEARCH_FAILED"
	ErrCodeCancelled       = "CANCELLED"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode returns the code of the first CommonError in err's chain, or an empty string
func ErrorCode(err error) string {
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
