package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/sheets"
)

// VerificationResult reports whether the configured spreadsheet can serve
// the application, with enough detail to fix it when it cannot.
type VerificationResult struct {
	Message       string
	Mode          string
	MissingSheets []string
	HeaderIssues  []HeaderIssue
	Success       bool
	WriteAccess   bool
}

// HeaderIssue flags a worksheet whose header row is narrower than the
// expected layout.
type HeaderIssue struct {
	Sheet    string
	Expected int
	Found    int
}

// VerifyConfiguration probes the spreadsheet in stages: metadata access,
// required worksheet presence, then header shape per required tab. The
// first failing stage produces an actionable diagnosis; only a fully
// clean run reports success.
func (s *Service) VerifyConfiguration(ctx context.Context) *VerificationResult {
	mode := s.api.Mode()
	result := &VerificationResult{
		Mode:        mode.String(),
		WriteAccess: mode == sheets.AuthModeServiceAccount,
	}

	meta, err := s.api.Metadata(ctx)
	if err != nil {
		switch sheets.ErrKind(err) {
		case sheets.KindNotFound:
			result.Message = "Spreadsheet not found: check the configured spreadsheet ID"
		case sheets.KindPermission:
			if mode == sheets.AuthModeAPIKey {
				result.Message = "Access denied: an API key can only read spreadsheets shared publicly"
			} else {
				result.Message = "Access denied: share the spreadsheet with the service account email"
			}
		case sheets.KindAuth:
			result.Message = "Authentication failed: check the service account key or API key"
		case sheets.KindConfig:
			result.Message = "Google Sheets is not configured: set a spreadsheet ID and credentials"
		default:
			result.Message = fmt.Sprintf("Could not reach the spreadsheet: %v", err)
		}
		return result
	}

	existing := make(map[string]bool, len(meta.SheetNames))
	for _, name := range meta.SheetNames {
		existing[name] = true
	}
	for _, tab := range codec.RequiredTabs {
		if !existing[tab] {
			result.MissingSheets = append(result.MissingSheets, tab)
		}
	}
	if len(result.MissingSheets) > 0 {
		result.Message = fmt.Sprintf("Spreadsheet %q is missing required worksheets: %s",
			meta.Title, strings.Join(result.MissingSheets, ", "))
		return result
	}

	for _, tab := range codec.RequiredTabs {
		expected := codec.Headers[tab]

		rows, err := s.api.GetRange(ctx, tab+"!1:1")
		if err != nil {
			result.Message = fmt.Sprintf("Could not read the header row of %q: %v", tab, err)
			return result
		}

		found := 0
		if len(rows) > 0 {
			found = len(rows[0])
		}
		if found < len(expected) {
			result.HeaderIssues = append(result.HeaderIssues, HeaderIssue{
				Sheet:    tab,
				Expected: len(expected),
				Found:    found,
			})
		}
	}
	if len(result.HeaderIssues) > 0 {
		names := make([]string, 0, len(result.HeaderIssues))
		for _, issue := range result.HeaderIssues {
			names = append(names, fmt.Sprintf("%s (%d of %d columns)", issue.Sheet, issue.Found, issue.Expected))
		}
		result.Message = "Worksheets have fewer header columns than expected: " + strings.Join(names, ", ")
		return result
	}

	result.Success = true
	access := "read-only (API key)"
	if result.WriteAccess {
		access = "read/write (service account)"
	}
	result.Message = fmt.Sprintf("Connected to %q with %s access", meta.Title, access)
	return result
}
