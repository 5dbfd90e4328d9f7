package assessments

// Assessment status values
const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusPendingReview = "pending_review"
	StatusCompleted     = "completed"
	StatusError         = "error"
)

// Legal status transitions. Two linear paths out of pending — automated
// (in_progress) and clerk-reviewed (pending_review) — plus error as a
// retriable dead end on the automated path. No transition skips a step.
var transitions = map[string][]string{
	StatusPending:       {StatusInProgress, StatusPendingReview},
	StatusInProgress:    {StatusCompleted, StatusError},
	StatusPendingReview: {StatusCompleted},
	StatusError:         {StatusInProgress},
}

func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
