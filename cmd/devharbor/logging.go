package main

import (
	"context"
	"time"

	"github.com/devharbor/devharbor/internal/logging"
)

// withCmdRunLogger emits a start log line and returns a context with the
// resource id attached to the logger, plus a cleanup function to emit the
// success or failure line.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "workspace.create", resourceID)
//	defer func() { cleanup(err) }()
//
// Log message format:
// - Start:   CMD:<operation>/S
// - Success: CMD:<operation>/EOK  (with err, elapsed attributes)
// - Failure: CMD:<operation>/EFAIL (with err, elapsed attributes)
func withCmdRunLogger(ctx context.Context, operation, resourceID string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("resourceId", resourceID)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "CMD:"+operation+"/S")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "CMD:"+operation+"/EOK", "err", "", "elapsed", elapsed)
			return
		}
		errStr := err.Error()
		if len(errStr) > 32 {
			errStr = errStr[:32] + "..."
		}
		logger.Info(ctx, "CMD:"+operation+"/EFAIL", "err", errStr, "elapsed", elapsed)
	}

	return ctx, cleanup
}
