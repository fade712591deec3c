package campaign

import (
	"context"
	"fmt"

	"github.com/gollllden/Done/internal/notify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler registers the Monday and Friday campaigns under standard
// five-field cron specs. An empty spec leaves that campaign unscheduled.
func NewScheduler(runner *Runner, mondaySpec, fridaySpec string, log *zap.Logger) (*Scheduler, error) {
	c := cron.New()
	jobs := []struct {
		spec string
		kind notify.CampaignKind
	}{
		{mondaySpec, notify.CampaignMonday},
		{fridaySpec, notify.CampaignFriday},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		kind := j.kind
		if _, err := c.AddFunc(j.spec, func() {
			if _, err := runner.Run(context.Background(), kind); err != nil {
				log.Error("scheduled campaign failed", zap.String("kind", string(kind)), zap.Error(err))
			}
		}); err != nil {
			return nil, fmt.Errorf("schedule %s campaign %q: %w", kind, j.spec, err)
		}
		log.Info("campaign scheduled", zap.String("kind", string(kind)), zap.String("spec", j.spec))
	}
	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
