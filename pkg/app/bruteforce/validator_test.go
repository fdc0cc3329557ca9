package bruteforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

func TestRequestValidate(t *testing.T) {
	standalone := app.PackTarget{Mode: app.ModeStandalone, PackPath: "game.pck", BinaryPath: "game.exe"}

	tests := []struct {
		name    string
		request Request
		wantErr string
	}{
		{
			name:    "valid standalone",
			request: Request{Target: standalone, Jobs: 4},
		},
		{
			name:    "valid embedded with settings",
			request: Request{Target: app.PackTarget{Mode: app.ModeEmbedded, BinaryPath: "game.exe"}, Jobs: 1, BatchSize: 500, ProgressInterval: time.Second},
		},
		{
			name:    "missing pack path",
			request: Request{Target: app.PackTarget{Mode: app.ModeStandalone, BinaryPath: "game.exe"}, Jobs: 1},
			wantErr: "invalid target",
		},
		{
			name:    "unknown mode",
			request: Request{Target: app.PackTarget{Mode: "zip", BinaryPath: "game.exe"}, Jobs: 1},
			wantErr: "unknown mode",
		},
		{
			name:    "zero jobs",
			request: Request{Target: standalone},
			wantErr: "jobs has to be greater than 0",
		},
		{
			name:    "negative batch size",
			request: Request{Target: standalone, Jobs: 1, BatchSize: -1},
			wantErr: "batch size cannot be negative",
		},
		{
			name:    "negative progress interval",
			request: Request{Target: standalone, Jobs: 1, ProgressInterval: -time.Second},
			wantErr: "progress interval cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, app.ErrCodeInvalidInput, app.ErrorCode(err))
		})
	}
}
