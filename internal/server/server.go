// Package server is a reference implementation of the grading service API,
// backed by the local store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/logger"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/weights"
)

// Server serves the score endpoints for subjects held in a SubjectRepo.
type Server struct {
	repo   store.SubjectRepo
	tokens *TokenManager
	log    *logger.Logger
	engine *gin.Engine

	// writeMu serializes read-modify-write cycles on subjects.
	writeMu sync.Mutex
}

// New builds the router. All subject routes require a bearer token; the
// mutating ones also require the admin role.
func New(repo store.SubjectRepo, tokens *TokenManager, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{repo: repo, tokens: tokens, log: log.With("component", "server")}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	subjects := r.Group("/subjects/:id", RequireAuth(tokens))
	subjects.GET("/scores", s.getScores)

	admin := subjects.Group("", RequireAdmin())
	admin.PUT("/scores-hierarchical", s.saveHierarchical)
	admin.POST("/auto-distribute", s.autoDistribute)
	admin.PUT("/passing-criteria", s.updatePassingCriteria)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Seed stores every subject, replacing existing ones with the same id.
func (s *Server) Seed(ctx context.Context, subjects []store.Subject) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for i := range subjects {
		if err := s.repo.Save(ctx, &subjects[i]); err != nil {
			return err
		}
	}
	s.log.Info("seeded subjects", "count", len(subjects))
	return nil
}

func (s *Server) getScores(c *gin.Context) {
	subj, ok := s.loadSubject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.ScoresResponse{
		Envelope:       api.Envelope{Success: true},
		ScoreStructure: subj.Tree.Clone(),
		Subject: api.SubjectInfo{
			ID:                weights.ID(subj.ID),
			Name:              subj.Name,
			PassingPercentage: subj.PassingPercentage,
		},
	})
}

func (s *Server) saveHierarchical(c *gin.Context) {
	var req api.HierarchicalUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	subj, ok := s.loadSubject(c)
	if !ok {
		return
	}
	tree, err := applyUpdates(subj.Tree, req.Updates)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	subj.Tree = tree
	if !s.persist(c, subj) {
		return
	}
	c.JSON(http.StatusOK, api.Envelope{Success: true, Message: "Scores updated successfully"})
}

func (s *Server) autoDistribute(c *gin.Context) {
	var req api.AutoDistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.SubjectID != "" && string(req.SubjectID) != c.Param("id") {
		abort(c, http.StatusBadRequest, "subject_id does not match the request path")
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	subj, ok := s.loadSubject(c)
	if !ok {
		return
	}
	if req.ResetBeforeDistribute {
		subj.Tree = weights.DistributeNested(subj.Tree)
	} else {
		subj.Tree = weights.Distribute(subj.Tree)
	}
	if !s.persist(c, subj) {
		return
	}
	c.JSON(http.StatusOK, api.Envelope{Success: true, Message: "Scores distributed evenly"})
}

func (s *Server) updatePassingCriteria(c *gin.Context) {
	var req api.PassingCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PassingPercentage < 0 || req.PassingPercentage > weights.Total {
		abort(c, http.StatusBadRequest, "Passing percentage must be between 0 and 100")
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	subj, ok := s.loadSubject(c)
	if !ok {
		return
	}
	subj.PassingPercentage = weights.Round2(req.PassingPercentage)
	if req.AutoDistributeScore {
		subj.Tree = weights.DistributeNested(subj.Tree)
	}
	if !s.persist(c, subj) {
		return
	}
	c.JSON(http.StatusOK, api.Envelope{Success: true, Message: "Passing criteria updated"})
}

func (s *Server) loadSubject(c *gin.Context) (*store.Subject, bool) {
	subj, err := s.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrSubjectNotFound) {
		abort(c, http.StatusNotFound, "Subject not found")
		return nil, false
	}
	if err != nil {
		s.log.Error("load subject", "error", err)
		abort(c, http.StatusInternalServerError, "Failed to load subject")
		return nil, false
	}
	return subj, true
}

func (s *Server) persist(c *gin.Context, subj *store.Subject) bool {
	if err := s.repo.Save(c.Request.Context(), subj); err != nil {
		s.log.Error("save subject", "error", err)
		abort(c, http.StatusInternalServerError, "Failed to save subject")
		return false
	}
	return true
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.Envelope{Success: false, Message: msg})
}
