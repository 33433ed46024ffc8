package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/containrrr/shoutrrr"

	"github.com/andchir/install-scripts/internal/logger"
	"github.com/andchir/install-scripts/internal/models"
	"github.com/andchir/install-scripts/internal/transcript"
)

// maxNotifyOutput bounds how much transcript tail goes into a notification.
const maxNotifyOutput = 500

// NotificationService pushes external notifications about failed script runs
// through shoutrrr destination URLs. With no URLs configured it is a no-op.
type NotificationService struct {
	URLs []string
}

func NewNotificationService(urls []string) *NotificationService {
	return &NotificationService{URLs: urls}
}

// RunFailed notifies every configured destination that a run ended in
// failure. Send errors are logged, never propagated: notifications are
// best-effort and must not fail the ingest path.
func (s *NotificationService) RunFailed(run *models.ScriptRun) {
	if len(s.URLs) == 0 {
		return
	}

	msg := s.failureMessage(run)
	for _, url := range s.URLs {
		if err := shoutrrr.Send(url, msg); err != nil {
			logger.WithFields(map[string]interface{}{
				"run_id": run.ID,
				"script": run.ScriptName,
			}).Warnf("failed to send notification: %v", err)
		}
	}
}

// failureMessage builds the notification body from the run's sanitized
// transcript tail. Output is stored sanitized already; the extra pass costs
// nothing on clean text and keeps chat apps safe if a caller bypassed the
// service when writing.
func (s *NotificationService) failureMessage(run *models.ScriptRun) string {
	tail := transcript.Sanitize(run.Output)
	if len(tail) > maxNotifyOutput {
		cut := len(tail) - maxNotifyOutput
		// never split a multi-byte rune at the head of the tail
		for cut < len(tail) && !utf8.RuneStart(tail[cut]) {
			cut++
		}
		tail = tail[cut:]
	}
	return fmt.Sprintf("Script '%s' failed on %s\n\n%s", run.ScriptName, run.Host, tail)
}
