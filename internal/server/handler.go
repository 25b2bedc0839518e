package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/export"
	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
	"github.com/piwi3910/trimcut/internal/store"
)

// Version is reported by /api/status.
var Version = "dev"

// Handler implements the /api routes.
type Handler struct {
	cfg   model.AppConfig
	store *store.Store
}

func NewHandler(cfg model.AppConfig, st *store.Store) *Handler {
	return &Handler{cfg: cfg, store: st}
}

// RegisterRoutes mounts every endpoint on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/cutlists", h.MakeCutList)
	router.POST("/compare", h.Compare)
	router.POST("/plans", h.CreatePlan)

	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/report", h.GetRunReport)
	router.DELETE("/runs/:id", h.DeleteRun)
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Version  string          `json:"version"`
	History  bool            `json:"history"`
	Defaults model.AppConfig `json:"defaults"`
}

// GetStatus GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Version:  Version,
		History:  h.store != nil,
		Defaults: h.cfg,
	})
}

// CutInput is one requested cut. Job and label are free text.
type CutInput struct {
	Job    string  `json:"job"`
	Label  string  `json:"label"`
	Length float64 `json:"length"`
}

// CutListRequest is the body of POST /api/cutlists.
type CutListRequest struct {
	Name        string     `json:"name"`
	BoardLength float64    `json:"board_length"`
	Kerf        *float64   `json:"kerf"`
	Join        bool       `json:"join"`
	Offcuts     []float64  `json:"offcuts"`
	Cuts        []CutInput `json:"cuts"`
}

// settings resolves omitted fields against the configured defaults.
func (r CutListRequest) settings(cfg model.AppConfig) model.StockSettings {
	s := model.StockSettings{BoardLength: r.BoardLength, Kerf: cfg.DefaultKerf, Join: r.Join}
	if s.BoardLength == 0 {
		s.BoardLength = cfg.DefaultBoardLength
	}
	if r.Kerf != nil {
		s.Kerf = *r.Kerf
	}
	return s
}

func (r CutListRequest) cuts() []model.Cut {
	cuts := make([]model.Cut, 0, len(r.Cuts))
	for _, in := range r.Cuts {
		cuts = append(cuts, model.NewCut(in.Job, in.Label, in.Length))
	}
	return cuts
}

// MakeCutList POST /api/cutlists
func (h *Handler) MakeCutList(c *gin.Context) {
	var req CutListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = "Cut List"
	}

	maker := engine.New(req.settings(h.cfg), req.Offcuts)
	cl, err := maker.Make(req.Name, req.cuts())
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cutlist":        cl,
		"efficiency":     cl.Efficiency(),
		"unused_offcuts": maker.Offcuts(),
		"remnants":       model.DetectRemnants(cl, h.cfg.MinRemnantLength),
	})
}

// ScenarioResult is the JSON view of one comparison scenario.
type ScenarioResult struct {
	Name         string              `json:"name"`
	Settings     model.StockSettings `json:"settings"`
	Boards       int                 `json:"boards"`
	Cuts         int                 `json:"cuts"`
	StockLength  float64             `json:"stock_length"`
	WastePercent float64             `json:"waste_percent"`
	Error        string              `json:"error,omitempty"`
}

// Compare POST /api/compare runs the default what-if scenarios for a cut list request.
func (h *Handler) Compare(c *gin.Context) {
	var req CutListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	base := req.settings(h.cfg)
	if err := base.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := engine.CompareScenarios(req.Name, req.cuts(), engine.BuildDefaultScenarios(base, req.Offcuts))
	out := make([]ScenarioResult, 0, len(results))
	for _, r := range results {
		sr := ScenarioResult{
			Name:         r.Scenario.Name,
			Settings:     r.Scenario.Settings,
			Boards:       r.BoardsUsed,
			Cuts:         r.TotalCuts,
			StockLength:  r.StockLength,
			WastePercent: r.WastePercent,
		}
		if r.Err != nil {
			sr.Error = r.Err.Error()
		}
		out = append(out, sr)
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}

// PlanResponse is returned by POST /api/plans.
type PlanResponse struct {
	RunID  string             `json:"run_id,omitempty"`
	Result *engine.PlanResult `json:"result"`
}

// CreatePlan POST /api/plans plans a job. Pass ?save=false to skip history.
func (h *Handler) CreatePlan(c *gin.Context) {
	job := model.Job{Settings: model.DefaultPlanSettings()}
	job.Settings.Stock = nil
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	project.ApplyJobDefaults(&job, "Untitled")

	result, err := engine.NewPlanner(h.cfg.MinRemnantLength).Plan(job)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	resp := PlanResponse{Result: result}
	if h.store != nil && c.DefaultQuery("save", "true") != "false" {
		sum, err := h.store.SaveRun(result, "server")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.RunID = sum.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is disabled"})
		return false
	}
	return true
}

// ListRuns GET /api/runs?limit=20
func (h *Handler) ListRuns(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// DeleteRun DELETE /api/runs/:id
func (h *Handler) DeleteRun(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	if err := h.store.DeleteRun(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// reportFormats maps ?format= values to exporters that write files.
var reportFormats = map[string]struct {
	ext         string
	contentType string
	write       func(path string, r *engine.PlanResult) error
}{
	"pdf":    {".pdf", "application/pdf", export.ExportPDF},
	"labels": {".pdf", "application/pdf", export.ExportLabels},
	"xlsx":   {".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.ExportExcel},
}

// GetRunReport GET /api/runs/:id/report?format=html|text|pdf|labels|xlsx
func (h *Handler) GetRunReport(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	format := c.DefaultQuery("format", "html")
	switch format {
	case "html":
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.RenderHTML(c.Writer, run.Result); err != nil {
			_ = c.Error(err)
		}
		return
	case "text":
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.WriteText(c.Writer, run.Result); err != nil {
			_ = c.Error(err)
		}
		return
	}

	rf, ok := reportFormats[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
		return
	}

	dir, err := os.MkdirTemp("", "trimcut-report-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(dir)

	name := fmt.Sprintf("run-%s%s", run.ID, rf.ext)
	path := filepath.Join(dir, name)
	if err := rf.write(path, run.Result); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", rf.contentType)
	c.FileAttachment(path, name)
}

// writeEngineError maps an oversize cut to 422 and anything else to 400.
func writeEngineError(c *gin.Context, err error) {
	var oversize *model.OversizeCutError
	if errors.As(err, &oversize) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"label":        oversize.Label,
			"length":       oversize.Length,
			"board_length": oversize.BoardLength,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
