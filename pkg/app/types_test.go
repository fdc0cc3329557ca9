package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPackTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  PackTarget
		wantErr string
	}{
		{"standalone", PackTarget{Mode: ModeStandalone, PackPath: "a.pck", BinaryPath: "a.exe"}, ""},
		{"embedded", PackTarget{Mode: ModeEmbedded, BinaryPath: "a.exe"}, ""},
		{"embedded same path", PackTarget{Mode: ModeEmbedded, PackPath: "a.exe", BinaryPath: "a.exe"}, ""},
		{"standalone without pack", PackTarget{Mode: ModeStandalone, BinaryPath: "a.exe"}, "pack path is required"},
		{"standalone without binary", PackTarget{Mode: ModeStandalone, PackPath: "a.pck"}, "binary path is required"},
		{"embedded without binary", PackTarget{Mode: ModeEmbedded}, "binary path is required"},
		{"embedded with other pack", PackTarget{Mode: ModeEmbedded, PackPath: "a.pck", BinaryPath: "a.exe"}, "embedded mode"},
		{"unknown mode", PackTarget{Mode: "zip"}, "unknown mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPackTarget_String(t *testing.T) {
	standalone := PackTarget{Mode: ModeStandalone, PackPath: "a.pck", BinaryPath: "a.exe"}
	embedded := PackTarget{Mode: ModeEmbedded, BinaryPath: "a.exe"}

	assert.Equal(t, "Pack a.pck, binary a.exe", standalone.String())
	assert.Equal(t, "Embedded pack in a.exe", embedded.String())
}

func TestProgressUpdate(t *testing.T) {
	tests := []struct {
		name    string
		update  ProgressUpdate
		percent float64
		rate    float64
		eta     time.Duration
	}{
		{"empty", ProgressUpdate{}, 0, 0, 0},
		{"no time elapsed", ProgressUpdate{Completed: 10, Total: 100}, 10, 0, 0},
		{"quarter done", ProgressUpdate{Completed: 250, Total: 1000, ElapsedTime: time.Second}, 25, 250, 3 * time.Second},
		{"complete", ProgressUpdate{Completed: 1000, Total: 1000, ElapsedTime: 2 * time.Second}, 100, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.percent, tt.update.Percent(), 0.0001)
			assert.InDelta(t, tt.rate, tt.update.Rate(), 0.0001)
			assert.Equal(t, tt.eta, tt.update.ETA())
		})
	}
}

func TestCommonError(t *testing.T) {
	cause := errors.New("disk on fire")

	err := NewError(ErrCodeContainerAccess, "failed to load pack", cause)
	assert.Equal(t, "failed to load pack: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewError(ErrCodeInvalidInput, "jobs has to be greater than 0", nil)
	assert.Equal(t, "jobs has to be greater than 0", bare.Error())

	wrapped := fmt.Errorf("run: %w", NewError(ErrCodeCancelled, "interrupted", context.Canceled))
	assert.Equal(t, ErrCodeCancelled, ErrorCode(wrapped))
	assert.ErrorIs(t, wrapped, context.Canceled)

	assert.Empty(t, ErrorCode(cause))
	assert.Empty(t, ErrorCode(nil))
}
