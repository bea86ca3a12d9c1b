package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"creditlens/internal/analysis"
	"creditlens/internal/storage"
	"creditlens/internal/store"
	"creditlens/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	reportsRepo    *store.ReportRepository
	accountsRepo   *store.AccountRepository
	negativesRepo  *store.NegativeItemRepository
	violationsRepo *store.ViolationRepository
	lettersRepo    *store.LetterRepository

	files    storage.ObjectStorage
	pipeline *analysis.Pipeline

	cookie *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	pipeline *analysis.Pipeline,
	files storage.ObjectStorage,
	reportsRepo *store.ReportRepository,
	accountsRepo *store.AccountRepository,
	negativesRepo *store.NegativeItemRepository,
	violationsRepo *store.ViolationRepository,
	lettersRepo *store.LetterRepository,
	jwksCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		reportsRepo:    reportsRepo,
		accountsRepo:   accountsRepo,
		negativesRepo:  negativesRepo,
		violationsRepo: violationsRepo,
		lettersRepo:    lettersRepo,

		files:    files,
		pipeline: pipeline,

		jwksCache: jwksCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/reports", s.handlePostReport, http.MethodPost)
		r.HandleFunc("/api/reports", s.handleListReports, http.MethodGet)
		r.HandleFunc("/api/reports/:reportID", s.handleGetReport, http.MethodGet)
		r.HandleFunc("/api/reports/:reportID", s.handleDeleteReport, http.MethodDelete)
		r.HandleFunc("/api/reports/:reportID/analyze", s.handleAnalyzeReport, http.MethodPost)
		r.HandleFunc("/api/reports/:reportID/accounts", s.handleListAccounts, http.MethodGet)
		r.HandleFunc("/api/reports/:reportID/negative-items", s.handleListNegativeItems, http.MethodGet)
		r.HandleFunc("/api/reports/:reportID/violations", s.handleListViolations, http.MethodGet)

		r.HandleFunc("/api/letters", s.handlePostLetter, http.MethodPost)
		r.HandleFunc("/api/letters", s.handleListLetters, http.MethodGet)
		r.HandleFunc("/api/letters/:letterID", s.handleGetLetter, http.MethodGet)
		r.HandleFunc("/api/letters/:letterID/status", s.handlePatchLetterStatus, http.MethodPatch)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
