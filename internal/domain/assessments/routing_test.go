package assessments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		tier       string
		price      float64
		manual     bool
		wantPath   string
		wantStatus string
	}{
		{"basic goes to ai", "basic", 50, false, PathAI, StatusInProgress},
		{"standard goes to clerk", "standard", 100, false, PathManual, StatusPendingReview},
		{"premium goes to clerk", "premium", 250, false, PathManual, StatusPendingReview},
		{"price alone forces manual", "basic", 100, false, PathManual, StatusPendingReview},
		{"flag alone forces manual", "basic", 50, true, PathManual, StatusPendingReview},
		{"missing tier cheap price", "", 50, false, PathAI, StatusInProgress},
		{"missing tier high price", "", 250, false, PathManual, StatusPendingReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.tier, tt.price, tt.manual)
			assert.Equal(t, tt.wantPath, d.Path)
			assert.Equal(t, tt.wantStatus, d.NextStatus)
		})
	}
}

func TestResultPagePrecedence(t *testing.T) {
	// tier wins when present, price is only the fallback
	assert.Equal(t, ResultsPremium, ResultPage("premium", 250))
	assert.Equal(t, ResultsPremium, ResultPage("", 250))
	assert.Equal(t, ResultsPremium, ResultPage("premium", 50)) // disagreeing price loses
	assert.Equal(t, ResultsBasic, ResultPage("basic", 250))    // ditto

	assert.Equal(t, ResultsStandard, ResultPage("standard", 100))
	assert.Equal(t, ResultsStandard, ResultPage("", 100))
	assert.Equal(t, ResultsStandard, ResultPage("", 249.99))

	assert.Equal(t, ResultsBasic, ResultPage("", 50))
	assert.Equal(t, ResultsBasic, ResultPage("unknown-tier", 99))
}

func TestManualProcessingFor(t *testing.T) {
	assert.False(t, ManualProcessingFor("basic", 50))
	assert.True(t, ManualProcessingFor("standard", 100))
	assert.True(t, ManualProcessingFor("premium", 250))
	assert.True(t, ManualProcessingFor("basic", 100)) // price signal alone
	assert.True(t, ManualProcessingFor("", 100))
	assert.False(t, ManualProcessingFor("", 99.99))
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusPendingReview},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusError},
		{StatusPendingReview, StatusCompleted},
		{StatusError, StatusInProgress}, // retry
	}
	for _, a := range allowed {
		assert.True(t, CanTransition(a[0], a[1]), "%s -> %s", a[0], a[1])
	}

	denied := [][2]string{
		{StatusPending, StatusCompleted}, // no skipping
		{StatusPendingReview, StatusError},
		{StatusCompleted, StatusInProgress},
		{StatusError, StatusCompleted},
		{StatusCompleted, StatusCompleted},
	}
	for _, d := range denied {
		assert.False(t, CanTransition(d[0], d[1]), "%s -> %s", d[0], d[1])
	}
}
