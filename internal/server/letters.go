package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"creditlens/internal/letters"
	"creditlens/internal/utils"
	"creditlens/pkg/types"

	"github.com/alexedwards/flow"
)

type letterForm struct {
	Type            string `form:"type" json:"type"`
	Recipient       string `form:"recipient" json:"recipient"`
	ConsumerName    string `form:"consumerName" json:"consumerName"`
	ConsumerAddress string `form:"consumerAddress" json:"consumerAddress"`
	SSNLast4        string `form:"ssnLast4" json:"ssnLast4"`
	CreditorName    string `form:"creditorName" json:"creditorName"`
	AccountNumber   string `form:"accountNumber" json:"accountNumber"`
	ReportID        string `form:"reportId" json:"reportId"`
	NegativeItemID  string `form:"negativeItemId" json:"negativeItemId"`
	ViolationID     string `form:"violationId" json:"violationId"`
}

var validLetterTypes = map[types.LetterType]bool{
	types.LetterTypeDispute:      true,
	types.LetterTypeComplaint:    true,
	types.LetterTypeVerification: true,
}

// handlePostLetter generates a letter, scores it and persists it as a
// draft. Referenced negative items and violations must belong to the
// caller; the lookup enforces that before anything is written.
func (s *Service) handlePostLetter(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	form, err := s.decodeLetterForm(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	letterType := types.LetterType(form.Type)
	if form.Type == "" {
		letterType = types.LetterTypeDispute
	}
	if !validLetterTypes[letterType] {
		s.respondError(w, http.StatusBadRequest, "unknown letter type")
		return
	}

	req := letters.Request{
		Type:            letterType,
		Recipient:       form.Recipient,
		ConsumerName:    form.ConsumerName,
		ConsumerAddress: form.ConsumerAddress,
		SSNLast4:        form.SSNLast4,
		CreditorName:    form.CreditorName,
		AccountNumber:   form.AccountNumber,
	}

	letter := &types.DisputeLetter{
		ID:        utils.NanoID(),
		UserID:    userID,
		Recipient: form.Recipient,
		Type:      letterType,
		Status:    types.LetterStatusDraft,
	}

	if form.ReportID != "" {
		if _, err := s.reportsRepo.Report(r.Context(), userID, form.ReportID); err != nil {
			s.respondStoreError(w, err)
			return
		}
		letter.ReportID = utils.StringPtr(form.ReportID)
	}

	if form.NegativeItemID != "" {
		item, err := s.negativesRepo.NegativeItem(r.Context(), userID, form.NegativeItemID)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		req.Item = item
		letter.NegativeItemID = utils.StringPtr(item.ID)
	}

	if form.ViolationID != "" {
		violation, err := s.violationsRepo.Violation(r.Context(), userID, form.ViolationID)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		req.Violation = violation
		letter.ViolationID = utils.StringPtr(violation.ID)
	}

	body, compliance := letters.Generate(req, time.Now())

	letter.Subject = letters.Subject(req)
	letter.Body = body
	letter.ComplianceScore = compliance.Score

	if err := s.lettersRepo.CreateLetter(r.Context(), letter); err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, struct {
		*types.DisputeLetter
		Compliance letters.ComplianceResult `json:"compliance"`
	}{letter, compliance})
}

func (s *Service) handleListLetters(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	list, err := s.lettersRepo.LettersByUser(r.Context(), userID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, list)
}

func (s *Service) handleGetLetter(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	letter, err := s.lettersRepo.Letter(r.Context(), userID, flow.Param(r.Context(), "letterID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, letter)
}

var letterTransitions = map[types.LetterStatus]map[types.LetterStatus]bool{
	types.LetterStatusDraft: {types.LetterStatusSent: true},
	types.LetterStatusSent:  {types.LetterStatusResponded: true},
}

// handlePatchLetterStatus advances the letter lifecycle. Status is the
// only mutable field after generation.
func (s *Service) handlePatchLetterStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}

	var patch struct {
		Status types.LetterStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	letterID := flow.Param(r.Context(), "letterID")

	letter, err := s.lettersRepo.Letter(r.Context(), userID, letterID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if !letterTransitions[letter.Status][patch.Status] {
		s.respondError(w, http.StatusConflict, "invalid status transition")
		return
	}

	if err := s.lettersRepo.UpdateStatus(r.Context(), userID, letterID, patch.Status); err != nil {
		s.respondStoreError(w, err)
		return
	}

	letter.Status = patch.Status
	s.respondJSON(w, http.StatusOK, letter)
}

// decodeLetterForm accepts either JSON or url-encoded form bodies.
func (s *Service) decodeLetterForm(r *http.Request) (*letterForm, error) {
	var form letterForm

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, err
		}
		return &form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		return nil, err
	}

	return &form, nil
}
