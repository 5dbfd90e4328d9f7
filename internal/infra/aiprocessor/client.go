package aiprocessor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"assessment-app/internal/domain/assessments"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The processor works through an assessment one stage per HTTP call; each
// completed stage kicks off the next without the caller waiting on the chain.
var stages = []string{"score", "recommendation", "strength", "improvement"}

type Client struct {
	baseURL string
	http    *http.Client
	db      *gorm.DB
}

var Default *Client

func Init(baseURL string, timeout time.Duration, db *gorm.DB) {
	Default = New(baseURL, timeout, db)
}

func New(baseURL string, timeout time.Duration, db *gorm.DB) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		db:      db,
	}
}

type stageRequest struct {
	AssessmentID string                `json:"assessmentId"`
	Type         string                `json:"type"`
	Stage        string                `json:"stage"`
	Responses    assessments.Responses `json:"responses"`
}

type stageResponse struct {
	Scores          map[string]float64 `json:"scores,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
	Strengths       []string           `json:"strengths,omitempty"`
	Improvements    []string           `json:"improvements,omitempty"`
	Summary         string             `json:"summary,omitempty"`
}

// Start kicks off analysis in the background. The assessment must already be
// in_progress; the caller does not wait on the result.
func (c *Client) Start(assessmentID string) {
	go c.runStage(assessmentID, 0)
}

// Process runs the whole chain synchronously. Exposed for the stage loop and
// for tests; production callers use Start.
func (c *Client) Process(assessmentID string) {
	c.processFrom(assessmentID, 0, false)
}

func (c *Client) runStage(assessmentID string, idx int) {
	c.processFrom(assessmentID, idx, true)
}

func (c *Client) processFrom(assessmentID string, idx int, chain bool) {
	logCtx := log.WithFields(log.Fields{
		"assessment_id": assessmentID,
		"stage":         stages[idx],
	})

	var a assessments.Assessment
	if err := c.db.First(&a, "id = ?", assessmentID).Error; err != nil {
		logCtx.WithError(err).Error("assessment not found for processing")
		return
	}
	if a.Status != assessments.StatusInProgress {
		logCtx.WithField("status", a.Status).Warn("skipping stage, assessment not in progress")
		return
	}

	resp, err := c.callStage(&a, stages[idx])
	if err != nil {
		// one retry, then give up and mark the assessment failed
		logCtx.WithError(err).Warn("stage call failed, retrying once")
		resp, err = c.callStage(&a, stages[idx])
	}
	if err != nil {
		logCtx.WithError(err).Error("stage failed after retry")
		c.markError(&a, logCtx)
		return
	}

	result := a.Result.Data()
	mergeStage(&result, resp)

	updates := map[string]interface{}{
		"result": datatypes.NewJSONType(result),
	}
	last := idx == len(stages)-1
	if last {
		now := time.Now()
		updates["status"] = assessments.StatusCompleted
		updates["completed_at"] = &now
	}
	if err := c.db.Model(&assessments.Assessment{}).
		Where("id = ?", a.ID).
		Updates(updates).Error; err != nil {
		logCtx.WithError(err).Error("failed to store stage result")
		return
	}

	if last {
		logCtx.Info("analysis completed")
		return
	}

	// trigger the next stage; the current call does not wait on it
	if chain {
		go c.runStage(assessmentID, idx+1)
	} else {
		c.processFrom(assessmentID, idx+1, false)
	}
}

func (c *Client) callStage(a *assessments.Assessment, stage string) (stageResponse, error) {
	body, err := json.Marshal(stageRequest{
		AssessmentID: a.ID,
		Type:         a.Type,
		Stage:        stage,
		Responses:    a.Responses.Data(),
	})
	if err != nil {
		return stageResponse{}, err
	}

	resp, err := c.http.Post(c.baseURL+"/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		return stageResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stageResponse{}, fmt.Errorf("ai processor returned %d for stage %s", resp.StatusCode, stage)
	}

	var out stageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return stageResponse{}, err
	}
	return out, nil
}

func (c *Client) markError(a *assessments.Assessment, logCtx *log.Entry) {
	if !assessments.CanTransition(a.Status, assessments.StatusError) {
		logCtx.WithField("status", a.Status).Error("cannot mark assessment as errored")
		return
	}
	if err := c.db.Model(&assessments.Assessment{}).
		Where("id = ?", a.ID).
		Update("status", assessments.StatusError).Error; err != nil {
		logCtx.WithError(err).Error("failed to mark assessment as errored")
	}
}

func mergeStage(r *assessments.Result, s stageResponse) {
	if len(s.Scores) > 0 {
		r.Scores = s.Scores
	}
	if len(s.Recommendations) > 0 {
		r.Recommendations = s.Recommendations
	}
	if len(s.Strengths) > 0 {
		r.Strengths = s.Strengths
	}
	if len(s.Improvements) > 0 {
		r.Improvements = s.Improvements
	}
	if s.Summary != "" {
		r.Summary = s.Summary
	}
}
