// Package job holds the scheduled maintenance jobs run by the web server's
// cron.
package job

import (
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/web/service"

	"go.uber.org/atomic"
)

// ClearSessionJob sweeps expired session rows so the table stays bounded.
type ClearSessionJob struct {
	sessionService *service.SessionService
	running        atomic.Bool
}

func NewClearSessionJob(sessionService *service.SessionService) *ClearSessionJob {
	return &ClearSessionJob{sessionService: sessionService}
}

// Run deletes expired sessions. Skips the run if the previous one has not
// finished yet.
func (j *ClearSessionJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		logger.Debug("session sweep still running, skipping")
		return
	}
	defer j.running.Store(false)

	count, err := j.sessionService.ClearExpired()
	if err != nil {
		logger.Warning("clear expired sessions failed:", err)
		return
	}
	if count > 0 {
		logger.Debugf("cleared %d expired sessions", count)
	}
}
