package clerk

import (
	"net/http"
	"time"

	"assessment-app/database"
	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/infra/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListReviewQueue returns the assessments waiting on a human, oldest first so
// nothing starves.
func ListReviewQueue(c *gin.Context) {
	var queue []assessments.Assessment
	if err := database.DB.
		Preload("User").
		Where("status = ?", assessments.StatusPendingReview).
		Order("created_at ASC").
		Find(&queue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load review queue"})
		return
	}
	c.JSON(http.StatusOK, queue)
}

func GetReviewItem(c *gin.Context) {
	var a assessments.Assessment
	if err := database.DB.
		Preload("User").
		Where("id = ?", c.Param("id")).
		First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// SubmitReview completes a manually-processed assessment with the clerk's
// written result.
func SubmitReview(c *gin.Context) {
	clerkID := c.GetUint("user_id")

	var body assessments.Result
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review payload"})
		return
	}
	if len(body.Recommendations) == 0 && body.Summary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review needs recommendations or a summary"})
		return
	}

	var a assessments.Assessment
	if err := database.DB.Where("id = ?", c.Param("id")).First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	if !assessments.CanTransition(a.Status, assessments.StatusCompleted) || a.Status != assessments.StatusPendingReview {
		c.JSON(http.StatusConflict, gin.H{"error": "Assessment is not awaiting review", "status": a.Status})
		return
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&assessments.Assessment{}).
			Where("id = ? AND status = ?", a.ID, assessments.StatusPendingReview).
			Updates(map[string]interface{}{
				"result":         datatypes.NewJSONType(body),
				"status":         assessments.StatusCompleted,
				"reviewed_by_id": clerkID,
				"reviewed_at":    &now,
				"completed_at":   &now,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	var user = a.User
	if user.Email == "" {
		database.DB.Where("id = ?", a.UserID).First(&user)
	}
	if notify.Default != nil && user.Email != "" {
		notify.Default.SendResultsReady(user.Email, assessments.ResultPage(a.Tier, a.Price))
	}

	c.JSON(http.StatusOK, gin.H{"status": assessments.StatusCompleted, "reviewedAt": now})
}
