package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/csfplan/internal/planner"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// atLeastGap keeps records whose gap score reaches minimum, preserving order
// and rank. A zero minimum keeps everything, including closed gaps.
func atLeastGap(records []planner.GapRecord, minimum float64) []planner.GapRecord {
	out := make([]planner.GapRecord, 0, len(records))
	for _, r := range records {
		if r.GapScore >= minimum {
			out = append(out, r)
		}
	}
	return out
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
