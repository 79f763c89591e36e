package achievements

import (
	"errors"

	"github.com/learnloop/backend/internal/models"
)

// ErrEmptyTargetSet rejects achievements with no target criteria at all.
// The schema forbids such rows, so hitting this means a bad fixture or a
// bug in catalog loading.
var ErrEmptyTargetSet = errors.New("achievement has no target criteria")

// Progress is a snapshot of everything targets can be measured against.
type Progress struct {
	XPTotal        int64
	CurrentStreak  int
	AttemptedTests map[int64]bool
}

// TargetSet holds an achievement's unlock criteria. All present criteria
// must be met; absent ones are ignored.
type TargetSet struct {
	xp     *int64
	streak *int
	testID *int64
}

// NewTargetSet builds a target set from an achievement row, rejecting one
// with no criteria.
func NewTargetSet(a models.Achievement) (TargetSet, error) {
	if a.TargetXP == nil && a.TargetStreak == nil && a.TargetTestID == nil {
		return TargetSet{}, ErrEmptyTargetSet
	}
	return TargetSet{xp: a.TargetXP, streak: a.TargetStreak, testID: a.TargetTestID}, nil
}

// Satisfied reports whether every present criterion is met by p.
func (t TargetSet) Satisfied(p Progress) bool {
	if t.xp != nil && p.XPTotal < *t.xp {
		return false
	}
	if t.streak != nil && p.CurrentStreak < *t.streak {
		return false
	}
	if t.testID != nil && !p.AttemptedTests[*t.testID] {
		return false
	}
	return true
}
