package assessments

import (
	"net/http"
	"time"

	"assessment-app/database"
	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/billing"
	"assessment-app/internal/domain/pricing"
	"assessment-app/internal/infra/aiprocessor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListCatalog is the public tier/price listing shown at selection time.
func ListCatalog(c *gin.Context) {
	tiers := []gin.H{
		{"tier": pricing.TierBasic, "price": pricing.TierPrice(pricing.TierBasic), "display": pricing.FormatCurrency(pricing.TierPrice(pricing.TierBasic))},
		{"tier": pricing.TierStandard, "price": pricing.TierPrice(pricing.TierStandard), "display": pricing.FormatCurrency(pricing.TierPrice(pricing.TierStandard))},
		{"tier": pricing.TierPremium, "price": pricing.TierPrice(pricing.TierPremium), "display": pricing.FormatCurrency(pricing.TierPrice(pricing.TierPremium))},
	}

	types := []string{
		assessments.TypeCareerInterest,
		assessments.TypePersonality,
		assessments.TypeAptitude,
		assessments.TypeSkills,
		assessments.TypeWorkValues,
		assessments.TypeLearningStyle,
		assessments.TypeEntrepreneurship,
	}

	c.JSON(http.StatusOK, gin.H{"tiers": tiers, "types": types})
}

// CreateAssessment runs at tier-selection time. The price comes from the
// tier table and the manual-processing flag is derived right here, so new
// rows cannot drift from the tier/price invariant.
func CreateAssessment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Type string `json:"type" binding:"required"`
		Tier string `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type or tier"})
		return
	}
	if !assessments.IsValidType(body.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown assessment type"})
		return
	}

	price := pricing.TierPrice(body.Tier)
	a := assessments.Assessment{
		ID:               uuid.NewString(),
		UserID:           userID,
		Type:             body.Type,
		Tier:             body.Tier,
		Price:            price,
		Status:           assessments.StatusPending,
		ManualProcessing: assessments.ManualProcessingFor(body.Tier, price),
	}

	if err := database.DB.Create(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assessment"})
		return
	}

	c.JSON(http.StatusOK, a)
}

func GetAssessment(c *gin.Context) {
	userID := c.GetUint("user_id")

	var a assessments.Assessment
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

func ListMyAssessments(c *gin.Context) {
	userID := c.GetUint("user_id")

	var list []assessments.Assessment
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assessments"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// SubmitResponses stores the answers and routes the assessment: basic-tier
// work goes to the AI processor, everything else waits for a clerk. Requires
// a completed payment.
func SubmitResponses(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body assessments.Responses
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing answers"})
		return
	}

	var a assessments.Assessment
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	var payment billing.Payment
	if err := database.DB.
		Where("assessment_id = ? AND status = ?", a.ID, billing.StatusCompleted).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required before submitting responses"})
		return
	}

	decision := assessments.Decide(a.Tier, a.Price, a.ManualProcessing)
	if !assessments.CanTransition(a.Status, decision.NextStatus) {
		c.JSON(http.StatusConflict, gin.H{"error": "Assessment already submitted", "status": a.Status})
		return
	}

	var updated int64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&assessments.Assessment{}).
			Where("id = ? AND status = ?", a.ID, a.Status).
			Updates(map[string]interface{}{
				"responses": datatypes.NewJSONType(body),
				"status":    decision.NextStatus,
			})
		updated = res.RowsAffected
		return res.Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save responses"})
		return
	}
	// a concurrent submit moved the status first; only the winner kicks off
	// processing
	if updated == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Assessment already submitted"})
		return
	}

	if decision.Path == assessments.PathAI && aiprocessor.Default != nil {
		aiprocessor.Default.Start(a.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   decision.NextStatus,
		"path":     decision.Path,
		"redirect": decision.Redirect,
	})
}

// GetResults returns the result when ready, otherwise the current status and
// the page the client should land on.
func GetResults(c *gin.Context) {
	userID := c.GetUint("user_id")

	var a assessments.Assessment
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	redirect := assessments.ResultPage(a.Tier, a.Price)
	if a.Status != assessments.StatusCompleted {
		c.JSON(http.StatusOK, gin.H{
			"ready":    false,
			"status":   a.Status,
			"redirect": redirect,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ready":       true,
		"redirect":    redirect,
		"result":      a.Result.Data(),
		"completedAt": a.CompletedAt,
	})
}

// RetryProcessing puts an errored assessment back on the AI path.
func RetryProcessing(c *gin.Context) {
	userID := c.GetUint("user_id")

	var a assessments.Assessment
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&a).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	if !assessments.CanTransition(a.Status, assessments.StatusInProgress) || a.Status != assessments.StatusError {
		c.JSON(http.StatusConflict, gin.H{"error": "Assessment is not in a retriable state", "status": a.Status})
		return
	}

	if err := database.DB.Model(&assessments.Assessment{}).
		Where("id = ?", a.ID).
		Update("status", assessments.StatusInProgress).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retry assessment"})
		return
	}

	if aiprocessor.Default != nil {
		aiprocessor.Default.Start(a.ID)
	}

	c.JSON(http.StatusOK, gin.H{"status": assessments.StatusInProgress, "retriedAt": time.Now()})
}
