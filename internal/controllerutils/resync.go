package controllerutils

import (
	"github.com/go-logr/logr"
	"github.com/robfig/cron"
)

// ResyncScheduler periodically triggers a full resync sweep independent of
// watch events, the backstop spec §4.9 requires in case a change is missed
// (e.g. an external actor edits the zone directly on the primary).
type ResyncScheduler struct {
	cron *cron.Cron
	log  logr.Logger
}

// NewResyncScheduler parses spec (standard five-field cron syntax, e.g.
// "*/15 * * * *" for every 15 minutes) and wires fn to run on every tick.
func NewResyncScheduler(spec string, log logr.Logger, fn func()) (*ResyncScheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	c := cron.New()
	c.Schedule(schedule, cron.FuncJob(fn))
	return &ResyncScheduler{cron: c, log: log.WithName("resync-scheduler")}, nil
}

// Start begins running the schedule in the background. Stop undoes it.
func (s *ResyncScheduler) Start() {
	s.log.Info("starting periodic resync scheduler")
	s.cron.Start()
}

func (s *ResyncScheduler) Stop() {
	s.cron.Stop()
}
