package assessments

import (
	"strings"
	"time"

	"assessment-app/internal/domain/users"

	"gorm.io/datatypes"
)

// The 7 assessment type codes.
const (
	TypeCareerInterest   = "career-interest"
	TypePersonality      = "personality"
	TypeAptitude         = "aptitude"
	TypeSkills           = "skills"
	TypeWorkValues       = "work-values"
	TypeLearningStyle    = "learning-style"
	TypeEntrepreneurship = "entrepreneurship"
)

var validTypes = map[string]bool{
	TypeCareerInterest:   true,
	TypePersonality:      true,
	TypeAptitude:         true,
	TypeSkills:           true,
	TypeWorkValues:       true,
	TypeLearningStyle:    true,
	TypeEntrepreneurship: true,
}

func IsValidType(code string) bool {
	return validTypes[strings.ToLower(strings.TrimSpace(code))]
}

type Assessment struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID uint   `gorm:"not null;index"`
	User   users.User

	Type string `gorm:"not null"`
	Tier string `gorm:"not null"`

	// Set from the tier table at creation; mutated only by coupon
	// application, frozen once the payment completes.
	Price float64 `gorm:"not null"`

	Status string `gorm:"not null;default:'pending'"`

	// Must equal ManualProcessingFor(Tier, Price). Enforced at creation,
	// reconciled for legacy rows by the admin repair endpoint.
	ManualProcessing bool `gorm:"not null;default:false"`

	Responses datatypes.JSONType[Responses]
	Result    datatypes.JSONType[Result]

	ReviewedByID *uint
	ReviewedAt   *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Responses holds the submitted answers. Stored as JSON, but typed: the
// service only ever reads these named fields, never arbitrary keys.
type Responses struct {
	Answers []Answer `json:"answers"`
}

type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Result is the analysis outcome, whether produced by the AI processor or a
// clerk review.
type Result struct {
	Scores          map[string]float64 `json:"scores,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
	Strengths       []string           `json:"strengths,omitempty"`
	Improvements    []string           `json:"improvements,omitempty"`
	Summary         string             `json:"summary,omitempty"`
}
