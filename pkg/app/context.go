package app

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Output receives results and progress lines
	Output io.Writer

	// Logger receives diagnostic messages
	Logger *logrus.Logger

	// Progress reporting
	ProgressCallback func(update ProgressUpdate)
}

// NewContext creates a new application context
func NewContext() *Context {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	return &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Output:       os.Stdout,
		Logger:       logger,
	}
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// WithParent returns a copy of the context bound to parent
func (c *Context) WithParent(parent context.Context) *Context {
	newCtx := *c
	newCtx.Context = parent
	return &newCtx
}

// ApplyVerbosity sets the logger level from the verbose and quiet flags. Quiet wins.
func (c *Context) ApplyVerbosity(level string) error {
	switch {
	case c.Quiet:
		c.Logger.SetLevel(logrus.ErrorLevel)
	case c.Verbose:
		c.Logger.SetLevel(logrus.DebugLevel)
	default:
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return NewError(ErrCodeInvalidInput, "invalid log level", err)
		}
		c.Logger.SetLevel(lvl)
	}
	return nil
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(ProgressUpdate)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(update ProgressUpdate) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(update)
	}
}

// Log outputs a message based on verbosity settings
func (c *Context) Log(message string) {
	c.Logger.Debug(message)
}

// Error outputs an error message unless quiet
func (c *Context) Error(message string) {
	c.Logger.Error(message)
}
