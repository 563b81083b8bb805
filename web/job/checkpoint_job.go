package job

import (
	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/logger"
)

// CheckpointJob folds the SQLite WAL back into the main database file so the
// log does not grow without bound between restarts.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Here Run is an interface method of the cron Job interface
func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint job err:", err)
	}
}
