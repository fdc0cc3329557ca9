package bruteforce

import (
	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

// Validate validates a search request
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid target", err)
	}

	if r.Jobs < 1 {
		return app.NewError(app.ErrCodeInvalidInput, "jobs has to be greater than 0", nil)
	}

	if r.BatchSize < 0 {
		return app.NewError(app.ErrCodeInvalidInput, "batch size cannot be negative", nil)
	}

	if r.ProgressInterval < 0 {
		return app.NewError(app.ErrCodeInvalidInput, "progress interval cannot be negative", nil)
	}

	return nil
}
