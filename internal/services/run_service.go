package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andchir/install-scripts/internal/metrics"
	"github.com/andchir/install-scripts/internal/models"
	"github.com/andchir/install-scripts/internal/transcript"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunService records script executions. All transcript text is sanitized on
// the way in, so stored and served output never contains escape sequences.
type RunService struct {
	DB       *gorm.DB
	Notifier *NotificationService
}

func NewRunService(db *gorm.DB, notifier *NotificationService) *RunService {
	return &RunService{DB: db, Notifier: notifier}
}

// clean sanitizes a transcript chunk and feeds the byte delta to metrics.
func clean(s string) string {
	out := transcript.Sanitize(s)
	metrics.ObserveSanitize(len(s) - len(out))
	return out
}

// Create records a new run. The output transcript is sanitized before it is
// persisted; a run created directly in failed state notifies immediately.
func (s *RunService) Create(scriptName, host string, status models.RunStatus, output string) (*models.ScriptRun, error) {
	run := &models.ScriptRun{
		ScriptName: scriptName,
		Host:       host,
		Status:     status,
		Output:     clean(output),
	}

	if err := s.DB.Create(run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	metrics.IncRunRecorded()
	if run.Status == models.RunStatusFailed && s.Notifier != nil {
		s.Notifier.RunFailed(run)
	}

	return run, nil
}

// AppendOutput sanitizes chunk and appends it to the run's transcript,
// optionally moving the run to a new status. An empty status leaves the
// current one in place.
func (s *RunService) AppendOutput(id, chunk string, status models.RunStatus) (*models.ScriptRun, error) {
	run, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	run.Output += clean(chunk)
	if status != "" {
		run.Status = status
	}

	if err := s.DB.Save(run).Error; err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	if status == models.RunStatusFailed && s.Notifier != nil {
		s.Notifier.RunFailed(run)
	}

	return run, nil
}

// Get fetches a run by id.
func (s *RunService) Get(id string) (*models.ScriptRun, error) {
	var run models.ScriptRun
	if err := s.DB.First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("load run: %w", err)
	}
	return &run, nil
}

// List returns recent runs, newest first, optionally filtered by script name.
func (s *RunService) List(scriptName string, limit int) ([]models.ScriptRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.DB.Order("created_at desc").Limit(limit)
	if scriptName != "" {
		query = query.Where("script_name = ?", scriptName)
	}

	var runs []models.ScriptRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// PurgeOlderThan deletes finished runs older than age and returns how many
// rows went away. Runs still marked running are kept regardless of age.
func (s *RunService) PurgeOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res := s.DB.Where("created_at < ? AND status <> ?", cutoff, models.RunStatusRunning).
		Delete(&models.ScriptRun{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge runs: %w", res.Error)
	}
	return res.RowsAffected, nil
}
