package bruteforce

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-pckbrute/internal/services"
	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

// Handle processes a key search request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := ctx.Logger.WithFields(logrus.Fields{"run": runID, "mode": req.Target.Mode})
	log.Infof("Resolving %s", req.Target.String())

	// 2. Parse the pack and load the search space before any worker starts
	source := newContainerSource(req.Target)
	target, err := source.Resolve()
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to load "+source.Describe(), err)
	}
	logPackInfo(log, target)

	// 3. Search
	svc, err := services.NewKeySearchService(services.SearchConfig{
		Params:    target.Params,
		Host:      target.Host,
		Workers:   req.Jobs,
		BatchSize: req.BatchSize,
		Logger:    ctx.Logger,
	})
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid search configuration", err)
	}

	log.WithField("workers", req.Jobs).Infof("Searching %d offsets", svc.RealSize())

	reporterCtx, stopReporter := context.WithCancel(ctx)
	reporter := NewProgressReporter(ctx, svc.State(), svc.RealSize(), req.ProgressInterval)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reporter.Run(reporterCtx)
	}()

	result, err := svc.Run(ctx)
	stopReporter()
	<-done

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, app.NewError(app.ErrCodeCancelled,
				fmt.Sprintf("search interrupted after %d iterations", svc.State().Iterations()), err)
		}
		return nil, app.NewError(app.ErrCodeSearchFailed, "key search failed", err)
	}

	response := createResponse(runID, req, target, result)
	if response.Found {
		log.WithFields(logrus.Fields{
			"offset":     response.KeyOffset,
			"iterations": response.Iterations,
		}).Infof("Key found: %s", response.Key)
	} else {
		log.WithField("iterations", response.Iterations).Info("Key not found in binary")
	}
	log.Infof("Search completed in %v", response.SearchTime)

	return response, nil
}

// newContainerSource picks the source implementation for the request's mode
func newContainerSource(target app.PackTarget) services.ContainerSource {
	if target.Mode == app.ModeEmbedded {
		return &services.EmbeddedSource{BinaryPath: target.BinaryPath}
	}
	return &services.StandaloneSource{PackPath: target.PackPath, BinaryPath: target.BinaryPath}
}

// logPackInfo logs the decoded header for verbose output
func logPackInfo(log *logrus.Entry, target *services.Target) {
	major, minor, patch := target.Header.EngineVersion()
	log.WithFields(logrus.Fields{
		"pack_offset":     target.Header.Offset(),
		"format_version":  target.Header.FormatVersion(),
		"engine_version":  fmt.Sprintf("%d.%d.%d", major, minor, patch),
		"file_count":      target.Header.FileCount(),
		"declared_length": target.Header.DeclaredLength(),
	}).Debug("Pack header decoded")
}

func createResponse(runID string, req *Request, target *services.Target, result *services.SearchResult) *Response {
	major, minor, patch := target.Header.EngineVersion()

	resp := &Response{
		RunID:      runID,
		Mode:       req.Target.Mode,
		BinaryPath: req.Target.BinaryPath,
		Pack: PackInfo{
			Offset:           target.PackOffset,
			FormatVersion:    target.Header.FormatVersion(),
			EngineVersion:    fmt.Sprintf("%d.%d.%d", major, minor, patch),
			PackFlags:        target.Header.PackFlags(),
			FileCount:        target.Header.FileCount(),
			DeclaredLength:   target.Header.DeclaredLength(),
			CiphertextLength: target.Params.CiphertextLength(),
		},
		Found:      result.Found,
		KeyOffset:  -1,
		Iterations: result.Iterations,
		SearchSize: result.RealSize,
		Percent:    result.Percent(),
		Workers:    result.Workers,
		SearchTime: result.Elapsed,
	}
	if req.Target.Mode == app.ModeStandalone {
		resp.PackPath = req.Target.PackPath
	}
	if result.Found {
		resp.Key = result.KeyHex()
		resp.KeyOffset = result.Offset
	}
	return resp
}
