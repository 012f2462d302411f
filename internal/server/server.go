// Package server exposes the annotator over HTTP.
package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/annotate"
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/output"
	"github.com/chmille4/snpeff/internal/variant"
)

// Server wraps an annotator behind a JSON API.
type Server struct {
	annotator *annotate.Annotator
	echo      *echo.Echo
	logger    *zap.Logger
}

// VariantRequest is one variant to annotate.
type VariantRequest struct {
	Chrom string `json:"chrom"`
	Pos   int    `json:"pos"`
	Ref   string `json:"ref"`
	Alt   string `json:"alt"`
}

// EffectResponse is one effect record rendered as JSON.
type EffectResponse struct {
	Effect       string `json:"effect"`
	Impact       string `json:"impact"`
	GeneName     string `json:"gene_name,omitempty"`
	GeneID       string `json:"gene_id,omitempty"`
	TranscriptID string `json:"transcript_id,omitempty"`
	Biotype      string `json:"biotype,omitempty"`
	ExonRank     int    `json:"exon_rank,omitempty"`
	CodonChange  string `json:"codon_change,omitempty"`
	AaChange     string `json:"aa_change,omitempty"`
	Warnings     string `json:"warnings,omitempty"`
}

// AnnotateResponse is the result for one variant.
type AnnotateResponse struct {
	Chrom   string           `json:"chrom"`
	Pos     int              `json:"pos"`
	Ref     string           `json:"ref"`
	Alt     string           `json:"alt"`
	Effects []EffectResponse `json:"effects"`
}

// New creates a server over an annotator.
func New(a *annotate.Annotator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{annotator: a, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	e.GET("/health", s.handleHealth)
	e.GET("/genome", s.handleGenome)
	e.POST("/annotate", s.handleAnnotate)

	s.echo = e
	return s
}

// Echo returns the underlying echo instance, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start listens on the given address until the server is shut down.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenome(c echo.Context) error {
	g := s.annotator.Genome()
	chroms := make([]string, 0)
	for _, ch := range g.Chromosomes() {
		chroms = append(chroms, ch.Name())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":          g.ID(),
		"chromosomes": chroms,
	})
}

func (s *Server) handleAnnotate(c echo.Context) error {
	var reqs []VariantRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no variants in request")
	}

	out := make([]AnnotateResponse, 0, len(reqs))
	for _, r := range reqs {
		v := variant.New(r.Chrom, r.Pos, r.Ref, r.Alt)
		effs, err := s.annotator.Annotate(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}

		resp := AnnotateResponse{
			Chrom: r.Chrom,
			Pos:   r.Pos,
			Ref:   r.Ref,
			Alt:   r.Alt,
		}
		for _, ve := range effs {
			resp.Effects = append(resp.Effects, toEffectResponse(ve))
		}
		out = append(out, resp)
	}

	return c.JSON(http.StatusOK, out)
}

func toEffectResponse(ve *effect.VariantEffect) EffectResponse {
	mc := output.ResolveContext(ve.Marker)
	return EffectResponse{
		Effect:       ve.Type.String(),
		Impact:       ve.Impact(),
		GeneName:     mc.GeneName,
		GeneID:       mc.GeneID,
		TranscriptID: mc.TranscriptID,
		Biotype:      mc.Biotype,
		ExonRank:     mc.ExonRank,
		CodonChange:  output.CodonChange(ve),
		AaChange:     output.AaChange(ve),
		Warnings:     output.Findings(ve),
	}
}
