package lib

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func NewScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error creating Scheduler instance: %s\n", err.Error())
		return nil, err
	}
	return sched, nil
}

// ScheduleEvery registers a recurring task and returns the job id.
func ScheduleEvery(sched gocron.Scheduler, interval time.Duration, handler any, args ...any) (*string, error) {
	job, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(handler, args...),
	)
	if err != nil {
		return nil, err
	}
	id := job.ID().String()
	return &id, nil
}
