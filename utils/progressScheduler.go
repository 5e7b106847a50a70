package utils

import (
	"log"

	"learnsphere/database"
	courseModels "learnsphere/models/course"
	"learnsphere/services"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the nightly progress reconciliation job
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running nightly progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 3 AM")
}

// ReconcileEnrollmentProgress recomputes progress for every active
// enrollment. RecomputeProgress is a pure function of completion counts, so
// sweeping it heals any drift left by a partial write (completion recorded
// but the recompute step failed) without risk of double-counting.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db
	manager := services.NewEnrollmentManager(db)

	var enrollments []courseModels.Enrollment
	if err := db.Where("status = ?", services.EnrollmentActive).Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching active enrollments: %v", err)
		return
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciling %d active enrollments", len(enrollments))

	updated := 0
	for _, enrollment := range enrollments {
		progress, err := manager.RecomputeProgress(enrollment.UserID, enrollment.CourseID)
		if err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error recomputing user %d course %d: %v",
				enrollment.UserID, enrollment.CourseID, err)
			continue
		}
		if progress != enrollment.Progress {
			updated++
		}
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciliation complete, %d enrollments adjusted", updated)
}
