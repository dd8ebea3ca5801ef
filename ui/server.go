package ui

import (
	"fmt"
	"net/http"

	"giftedlens/app"
	"giftedlens/domain/pipeline"
	"giftedlens/internal/config"
	"giftedlens/internal/errors"
	"giftedlens/internal/logging"
	"giftedlens/internal/recommend"

	"github.com/gin-gonic/gin"
)

// Server is the HTML dashboard. It holds no dataset state: every audit
// request carries its own upload and is recomputed from scratch.
type Server struct {
	router *gin.Engine
	svc    *app.AuditService
	cfg    *config.Config
	log    *logging.Logger
}

// NewServer creates the dashboard server
func NewServer(cfg *config.Config, svc *app.AuditService) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Upload.MaxUploadMB << 20
	router.SetHTMLTemplate(templates)

	s := &Server{
		router: router,
		svc:    svc,
		cfg:    cfg,
		log:    logging.New("ui"),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.POST("/export", s.handleExport)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("dashboard listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, "")
}

func (s *Server) handleAnalyze(c *gin.Context) {
	form, err := parseAuditForm(c.Request, s.cfg.Analysis.DefaultMinGroupSize)
	if err != nil {
		s.renderError(c, err)
		return
	}

	report, err := s.svc.Run(form.dataset, form.query)
	if err != nil {
		s.renderError(c, err)
		return
	}

	maxFunnel := 0
	for _, sc := range report.Funnel {
		if sc.Count > maxFunnel {
			maxFunnel = sc.Count
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Report":          report,
		"MaxFunnel":       maxFunnel,
		"Recommendations": recommend.HTML(),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	form, err := parseAuditForm(c.Request, s.cfg.Analysis.DefaultMinGroupSize)
	if err != nil {
		s.renderError(c, err)
		return
	}

	report, err := s.svc.Run(form.dataset, form.query)
	if err != nil {
		s.renderError(c, err)
		return
	}

	payload, err := disparityWorkbook(report)
	if err != nil {
		s.log.Error("workbook export failed: %v", err)
		s.renderError(c, errors.InternalError("failed to build workbook"))
		return
	}

	filename := fmt.Sprintf("disparity_%s_%s.xlsx", report.Query.GroupBy, report.Query.Outcome)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		payload)
}

func (s *Server) renderIndex(c *gin.Context, status int, errMsg string) {
	mappingColumns := append([]string{}, pipeline.RequiredColumns()[:4]...)
	mappingColumns = append(mappingColumns, pipeline.OptionalColumns()...)
	for _, stage := range pipeline.Stages() {
		mappingColumns = append(mappingColumns, string(stage))
	}

	c.HTML(status, "index.html", gin.H{
		"Error":               errMsg,
		"MappingColumns":      mappingColumns,
		"GroupAttributes":     pipeline.GroupAttributes(),
		"Stages":              pipeline.Stages(),
		"DefaultMinGroupSize": s.cfg.Analysis.DefaultMinGroupSize,
		"LatestYearOnly":      s.cfg.Analysis.LatestYearOnly,
	})
}

func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeMissingColumns, errors.CodeParseError:
		status = http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	s.log.Warn("request failed (%s): %v", code, err)
	c.HTML(status, "error.html", gin.H{
		"Code":    code,
		"Message": err.Error(),
	})
}
