package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/model"
	"github.com/ontax-dev/ontax/internal/propertytax"
	"github.com/ontax-dev/ontax/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

func fail(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

type statusResponse struct {
	Version     string   `json:"version"`
	Assessments int      `json:"assessments"`
	Rates       int      `json:"rates"`
	Formats     []string `json:"formats"`
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Version:     s.opts.Version,
		Assessments: s.tables.Assessments.Len(),
		Rates:       s.tables.Rates.Len(),
		Formats:     s.renderers.Formats(),
	})
}

type propertyRequest struct {
	Rolls            []string `json:"rolls" binding:"required,min=1"`
	Year             *int     `json:"year"`
	IncludeEducation *bool    `json:"include_education"`
}

func (r propertyRequest) options(defaults propertytax.Options) propertytax.Options {
	opts := defaults
	if r.Year != nil {
		opts.Year = *r.Year
	}
	if r.IncludeEducation != nil {
		opts.IncludeEducation = *r.IncludeEducation
	}
	return opts
}

type propertyResponse struct {
	Results  []model.PropertyTaxResult `json:"results"`
	Warnings []propertytax.Warning     `json:"warnings"`
	Total    decimal.Decimal           `json:"total"`
}

func (s *Server) runPropertyBatch(c *gin.Context) (propertytax.Batch, bool) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return propertytax.Batch{}, false
	}
	b := s.estimator.EstimateBatch(req.Rolls, req.options(s.opts.Defaults), nil)
	slog.Debug("property batch",
		"request_id", c.GetString("request_id"),
		"inputs", len(req.Rolls),
		"results", len(b.Results),
		"warnings", len(b.Warnings),
	)
	return b, true
}

func (s *Server) estimateProperty(c *gin.Context) {
	b, ok := s.runPropertyBatch(c)
	if !ok {
		return
	}
	resp := propertyResponse{
		Results:  b.Results,
		Warnings: b.Warnings,
		Total:    b.Total(),
	}
	if resp.Results == nil {
		resp.Results = []model.PropertyTaxResult{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []propertytax.Warning{}
	}
	c.JSON(http.StatusOK, resp)
}

type incomeRequest struct {
	Income *decimal.Decimal `json:"income" binding:"required"`
	RRSP   decimal.Decimal  `json:"rrsp"`
}

func (s *Server) runIncome(c *gin.Context) (model.IncomeTaxResult, bool) {
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return model.IncomeTaxResult{}, false
	}
	if req.Income.IsNegative() || req.RRSP.IsNegative() {
		fail(c, http.StatusBadRequest, errors.New("income and rrsp must not be negative"))
		return model.IncomeTaxResult{}, false
	}
	return s.income.Calculate(*req.Income, req.RRSP), true
}

func (s *Server) estimateIncome(c *gin.Context) {
	res, ok := s.runIncome(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) renderer(c *gin.Context) (report.Renderer, bool) {
	rd, err := s.renderers.Get(c.DefaultQuery("format", "xlsx"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return nil, false
	}
	return rd, true
}

func (s *Server) sendReport(c *gin.Context, kind string, rd report.Renderer, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Error("rendering report", "request_id", c.GetString("request_id"), "kind", kind, "error", err)
		fail(c, http.StatusInternalServerError, fmt.Errorf("rendering %s report: %w", kind, err))
		return
	}
	name := report.FileName(kind, rd, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, rd.ContentType(), buf.Bytes())
}

func (s *Server) reportProperty(c *gin.Context) {
	rd, ok := s.renderer(c)
	if !ok {
		return
	}
	b, ok := s.runPropertyBatch(c)
	if !ok {
		return
	}
	if len(b.Results) == 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "no properties could be estimated",
			"warnings": b.Warnings,
		})
		return
	}
	s.sendReport(c, "property", rd, func(buf *bytes.Buffer) error {
		return rd.RenderProperty(buf, b.Results)
	})
}

func (s *Server) reportIncome(c *gin.Context) {
	rd, ok := s.renderer(c)
	if !ok {
		return
	}
	res, ok := s.runIncome(c)
	if !ok {
		return
	}
	s.sendReport(c, "income", rd, func(buf *bytes.Buffer) error {
		return rd.RenderIncome(buf, res)
	})
}
