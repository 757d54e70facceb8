// Package cleanup collects shutdown jobs registered during startup and
// runs them once the command has finished.
package cleanup

import "go.uber.org/zap"

type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs every registered job in registration order. Failures are
// logged and do not stop the remaining jobs.
func CleanUp(log *zap.Logger) {
	for _, j := range jobs {
		if err := j.F(); err != nil {
			log.Warn("cleanup job failed", zap.String("job", j.Name), zap.Error(err))
			continue
		}
		log.Debug("cleanup job finished", zap.String("job", j.Name))
	}
}
