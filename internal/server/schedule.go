package server

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// newScheduler requests a rebuild every interval.
func newScheduler(interval time.Duration, rb *rebuilder) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(rb.request, "scheduled"),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	return s, nil
}
