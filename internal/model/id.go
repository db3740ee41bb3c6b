package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity IDs are generated client-side; the store never assigns keys.
// The shape is <PREFIX>-[<year>-]<unix-ms>-<rand>. The random suffix is a
// UUID fragment rather than a PRNG draw, which keeps the historical ID
// format while making collisions under concurrent creation negligible.

// NewProjectID returns an ID shaped PROJ-<year>-<ts>-<rand>.
func NewProjectID(now time.Time) string {
	return timestampID("PROJ", now, true)
}

// NewTaskID returns an ID shaped TASK-<ts>-<rand>.
func NewTaskID(now time.Time) string {
	return timestampID("TASK", now, false)
}

// NewTimeEntryID returns an ID shaped TIME-<ts>-<rand>.
func NewTimeEntryID(now time.Time) string {
	return timestampID("TIME", now, false)
}

// NewActivityID returns an ID shaped ACT-<ts>-<rand>.
func NewActivityID(now time.Time) string {
	return timestampID("ACT", now, false)
}

// NewClientID returns an ID shaped CLIENT-<year>-<ts>-<rand>.
func NewClientID(now time.Time) string {
	return timestampID("CLIENT", now, true)
}

// NewExpenseID returns an ID shaped EXP-<ts>-<rand>.
func NewExpenseID(now time.Time) string {
	return timestampID("EXP", now, false)
}

// NewPaymentID returns an ID shaped PAY-<ts>-<rand>.
func NewPaymentID(now time.Time) string {
	return timestampID("PAY", now, false)
}

// NewInvoiceNumber returns the next sequential number INV-<year>-<seq>,
// scanning existing numbers so the sequence survives restarts. Numbers
// from other years are ignored.
func NewInvoiceNumber(now time.Time, existing []string) string {
	year := now.Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	maxSeq := 0
	for _, number := range existing {
		rest, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}
		seq := 0
		if _, err := fmt.Sscanf(rest, "%d", &seq); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s%04d", prefix, maxSeq+1)
}

func timestampID(prefix string, now time.Time, withYear bool) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	if withYear {
		return fmt.Sprintf("%s-%d-%d-%s", prefix, now.Year(), now.UnixMilli(), suffix)
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}

// round2 rounds a monetary or hour value to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
