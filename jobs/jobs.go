package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/util"
)

// StartReconcileScheduler runs the treatment/appointment reconciler every
// hour. The sequential dual write in treatment recording has no rollback, so
// a crash between the two writes can leave a treatment whose appointment was
// never marked Completed; this job repairs those.
func StartReconcileScheduler(repo *repository.Repository) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 1h", func() {
		RunReconcile(repo)
	})

	c.Start()
	return c
}

// RunReconcile executes one reconcile pass and logs the outcome.
func RunReconcile(repo *repository.Repository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repaired, err := clinic.NewTreatments(repo).Reconcile(ctx)
	if err != nil {
		log.Println("reconcile run failed:", err)
		return
	}
	if repaired > 0 {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventReconcileRepair,
			Message:   "reconciler repaired appointments with recorded treatments",
			Details:   map[string]interface{}{"repaired": repaired},
		})
	}
}
