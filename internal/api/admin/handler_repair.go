package admin

import (
	"net/http"

	"assessment-app/database"
	"assessment-app/internal/domain/assessments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type repairReport struct {
	Scanned     int64 `json:"scanned"`
	FlagFixed   int64 `json:"manual_processing_fixed"`
	StatusFixed int64 `json:"status_fixed"`
}

// RepairAssessments reconciles rows where tier, price and the
// manual-processing flag have drifted apart. New rows can't drift — the flag
// is derived at creation — but rows that predate that rule can, and this
// endpoint applies the same derivation to them after the fact.
func RepairAssessments(c *gin.Context) {
	var report repairReport

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var all []assessments.Assessment
		if err := tx.Find(&all).Error; err != nil {
			return err
		}
		report.Scanned = int64(len(all))

		for _, a := range all {
			updates := map[string]interface{}{}

			want := assessments.ManualProcessingFor(a.Tier, a.Price)
			if a.ManualProcessing != want {
				updates["manual_processing"] = want
				report.FlagFixed++
			}

			// a manually-processed row must never sit on the AI path
			if want && a.Status == assessments.StatusInProgress {
				updates["status"] = assessments.StatusPendingReview
				report.StatusFixed++
			}

			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(&assessments.Assessment{}).
				Where("id = ?", a.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Repair failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
