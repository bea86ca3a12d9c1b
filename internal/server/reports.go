package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"creditlens/internal/ai"
	"creditlens/internal/analysis"
	"creditlens/internal/utils"
	"creditlens/pkg/types"

	"github.com/alexedwards/flow"
)

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
}

// handlePostReport accepts a multipart upload, stores the file bytes
// and records the report as uploaded. Analysis is a separate call.
func (s *Service) handlePostReport(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromName(header.Filename)
	}
	if !allowedUploadTypes[mimeType] {
		s.respondError(w, http.StatusUnsupportedMediaType, "only PDF and plain text reports are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.WithError(err).Error("failed to read uploaded file")
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	report := &types.CreditReport{
		ID:            utils.NanoID(),
		UserID:        userID,
		FileName:      header.Filename,
		FileSizeBytes: int64(len(data)),
		MimeType:      mimeType,
		Status:        types.ReportStatusUploaded,
	}
	report.StorageKey = fmt.Sprintf("%s/%s%s", userID, report.ID, filepath.Ext(header.Filename))

	if _, err := s.files.Upload(r.Context(), report.StorageKey, data, mimeType); err != nil {
		s.logger.WithError(err).Error("failed to store uploaded file")
		s.respondError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	if err := s.reportsRepo.CreateReport(r.Context(), report); err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, report)
}

func (s *Service) handleListReports(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	reports, err := s.reportsRepo.ReportsByUser(r.Context(), userID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, reports)
}

// reportDetail is the aggregate returned for a single report: the row
// plus everything the last analysis derived from it.
type reportDetail struct {
	*types.CreditReport
	Accounts      []*types.CreditAccount `json:"accounts"`
	NegativeItems []*types.NegativeItem  `json:"negativeItems"`
	Violations    []*types.Violation     `json:"violations"`
	Summary       *types.Summary         `json:"summary,omitempty"`
}

func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	reportID := flow.Param(r.Context(), "reportID")

	report, err := s.reportsRepo.Report(r.Context(), userID, reportID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	detail := reportDetail{CreditReport: report}

	if detail.Accounts, err = s.accountsRepo.AccountsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}
	if detail.NegativeItems, err = s.negativesRepo.NegativeItemsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}
	if detail.Violations, err = s.violationsRepo.ViolationsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if len(report.ParsedPayload) > 0 {
		var payload struct {
			Summary types.Summary `json:"summary"`
		}
		if err := json.Unmarshal(report.ParsedPayload, &payload); err == nil {
			detail.Summary = &payload.Summary
		}
	}

	s.respondJSON(w, http.StatusOK, detail)
}

// handleDeleteReport removes the report row, its derived rows and the
// stored file. Letters referencing the report survive with a dangling
// reportId by design of the letter lifecycle.
func (s *Service) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	reportID := flow.Param(r.Context(), "reportID")

	report, err := s.reportsRepo.Report(r.Context(), userID, reportID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if err := s.violationsRepo.DeleteViolationsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}
	if err := s.negativesRepo.DeleteNegativeItemsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}
	if err := s.accountsRepo.DeleteAccountsByReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}
	if err := s.reportsRepo.DeleteReport(r.Context(), userID, reportID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if err := s.files.Delete(r.Context(), report.StorageKey); err != nil {
		s.logger.WithError(err).WithField("storage_key", report.StorageKey).Warn("failed to delete stored file")
	}

	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Service) handleAnalyzeReport(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	providerName := r.URL.Query().Get("provider")
	if providerName == "" && r.Body != nil {
		var req struct {
			Provider string `json:"provider"`
		}
		// body is optional; a missing or empty one means the default
		_ = json.NewDecoder(r.Body).Decode(&req)
		providerName = req.Provider
	}
	if providerName == "" {
		providerName = analysis.ProviderPattern
	}

	result, err := s.pipeline.Analyze(r.Context(), userID, flow.Param(r.Context(), "reportID"), providerName)
	if err != nil {
		if errors.Is(err, ai.ErrUnknownProvider) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Service) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	accounts, err := s.accountsRepo.AccountsByReport(r.Context(), userID, flow.Param(r.Context(), "reportID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, accounts)
}

func (s *Service) handleListNegativeItems(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	items, err := s.negativesRepo.NegativeItemsByReport(r.Context(), userID, flow.Param(r.Context(), "reportID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, items)
}

func (s *Service) handleListViolations(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	violations, err := s.violationsRepo.ViolationsByReport(r.Context(), userID, flow.Param(r.Context(), "reportID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, violations)
}

func mimeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return ""
	}
}
