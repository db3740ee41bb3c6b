// Package service is the orchestration core: it validates inbound records,
// generates IDs, computes derived fields, performs the read-locate-write
// cycle the spreadsheet store requires, and emits an audit activity for
// every mutation.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/sheetboard/internal/common"
	"github.com/Veraticus/sheetboard/internal/sheets"
)

// Service exposes the data operations for one spreadsheet and credential
// set. Construct one per deployment; there is no package-level state, so
// multiple spreadsheets can coexist in a process.
type Service struct {
	api    sheets.API
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Service bound to the given transport.
func New(api sheets.API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// today returns the current date in sheet format.
func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Service) timestamp() string {
	return s.now().Format("2006-01-02 15:04:05")
}

// translate maps classified transport failures onto the three remediation
// paths the UI distinguishes: fix configuration, fix credentials, or retry.
func (s *Service) translate(err error, what string) error {
	if err == nil {
		return nil
	}

	switch sheets.ErrKind(err) {
	case sheets.KindConfig:
		return common.NewUserError("Google Sheets is not configured", err)
	case sheets.KindAuth:
		return common.NewUserError("Google Sheets authentication failed; check the configured credentials", err)
	case sheets.KindPermission:
		return common.NewUserError("Access denied: this operation is not possible with the current credentials", err)
	case sheets.KindNotFound:
		return common.NewUserError(fmt.Sprintf("Sheet not found while loading %s; verify the spreadsheet ID and worksheet tabs", what), err)
	default:
		return fmt.Errorf("loading %s: %w", what, err)
	}
}

// rangeForRow turns a whole-table range like "Projects!A:M" into the
// single-row range addressing sheet row n, e.g. "Projects!A5:M5".
func rangeForRow(tableRange string, n int) string {
	tab, cols, ok := strings.Cut(tableRange, "!")
	if !ok {
		return tableRange
	}
	first, last, ok := strings.Cut(cols, ":")
	if !ok {
		return tableRange
	}
	return fmt.Sprintf("%s!%s%d:%s%d", tab, first, n, last, n)
}

// sheetRow converts a data-slice index into the 1-based sheet row number,
// accounting for the header row.
func sheetRow(index int) int {
	return index + 2
}

// notFound builds the error for a locate-by-id miss.
func notFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, common.ErrNotFound)
}

// IsNotFound reports whether err is a locate-by-id miss.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
