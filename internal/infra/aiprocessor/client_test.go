package aiprocessor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &assessments.Assessment{}))
	return db
}

func seedInProgress(t *testing.T, db *gorm.DB) assessments.Assessment {
	t.Helper()
	u := users.User{Name: "Mei", Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(&u).Error)

	a := assessments.Assessment{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Type:   assessments.TypePersonality,
		Tier:   "basic",
		Price:  50,
		Status: assessments.StatusInProgress,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestProcessRunsAllStages(t *testing.T) {
	db := testDB(t)
	a := seedInProgress(t, db)

	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req stageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls = append(calls, req.Stage)

		out := stageResponse{}
		switch req.Stage {
		case "score":
			out.Scores = map[string]float64{"realistic": 72, "investigative": 85}
		case "recommendation":
			out.Recommendations = []string{"Data Analyst"}
		case "strength":
			out.Strengths = []string{"Analytical thinking"}
		case "improvement":
			out.Improvements = []string{"Public speaking"}
			out.Summary = "Strong analytical profile"
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	New(srv.URL, 5*time.Second, db).Process(a.ID)

	assert.Equal(t, []string{"score", "recommendation", "strength", "improvement"}, calls)

	var got assessments.Assessment
	require.NoError(t, db.First(&got, "id = ?", a.ID).Error)
	assert.Equal(t, assessments.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	result := got.Result.Data()
	assert.Equal(t, 85.0, result.Scores["investigative"])
	assert.Equal(t, []string{"Data Analyst"}, result.Recommendations)
	assert.Equal(t, "Strong analytical profile", result.Summary)
}

func TestProcessRetriesOnceThenErrors(t *testing.T) {
	db := testDB(t)
	a := seedInProgress(t, db)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	New(srv.URL, 5*time.Second, db).Process(a.ID)

	// first call plus exactly one retry
	assert.Equal(t, 2, attempts)

	var got assessments.Assessment
	require.NoError(t, db.First(&got, "id = ?", a.ID).Error)
	assert.Equal(t, assessments.StatusError, got.Status)
}

func TestProcessSkipsWrongStatus(t *testing.T) {
	db := testDB(t)
	a := seedInProgress(t, db)
	require.NoError(t, db.Model(&assessments.Assessment{}).
		Where("id = ?", a.ID).
		Update("status", assessments.StatusPendingReview).Error)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("processor must not be called for manual assessments")
	}))
	defer srv.Close()

	New(srv.URL, 5*time.Second, db).Process(a.ID)

	var got assessments.Assessment
	require.NoError(t, db.First(&got, "id = ?", a.ID).Error)
	assert.Equal(t, assessments.StatusPendingReview, got.Status)
}
