package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstammers/companies-house-abm/internal/engine"
	"github.com/jstammers/companies-house-abm/internal/evaluation"
	"github.com/jstammers/companies-house-abm/internal/persistence"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleDefaults returns the parameter values a bare simulate request
// would run with.
func (s *Server) handleDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, DefaultsResponse{Params: defaultParams(s.base())})
}

// handleSimulate runs one simulation synchronously and returns the full
// record series.
func (s *Server) handleSimulate(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params, cfg, err := req.resolve(s.base())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_PARAMS",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Archive && s.DB == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: ErrorDetail{
				Code:    "ARCHIVE_DISABLED",
				Message: "no archive database attached",
			},
		})
		return
	}

	opts := params.options(cfg)
	records := engine.RunSimulation(opts)

	response := SimulationResponse{
		Params:  params,
		Periods: records,
		Stats:   finiteStats(evaluation.ComputeStats(records, 0)),
	}

	if req.Archive {
		id, err := s.DB.SaveRun(opts, records)
		if err != nil {
			slog.Error("run archive failed", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: ErrorDetail{
					Code:    "ARCHIVE_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		response.RunID = id
	}

	c.JSON(http.StatusOK, response)
}

// handleListRuns lists archived runs, most recent first.
func (s *Server) handleListRuns(c *gin.Context) {
	if s.DB == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: ErrorDetail{
				Code:    "ARCHIVE_DISABLED",
				Message: "no archive database attached",
			},
		})
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	runs, err := s.DB.ListRuns(limit)
	if err != nil {
		slog.Error("run listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "ARCHIVE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	if runs == nil {
		runs = []persistence.RunMeta{}
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// handleGetRun returns one archived run with its full record series.
func (s *Server) handleGetRun(c *gin.Context) {
	if s.DB == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: ErrorDetail{
				Code:    "ARCHIVE_DISABLED",
				Message: "no archive database attached",
			},
		})
		return
	}

	id := c.Param("id")
	meta, records, err := s.DB.LoadRun(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: ErrorDetail{
					Code:    "RUN_NOT_FOUND",
					Message: "no archived run with id " + id,
				},
			})
			return
		}
		slog.Error("run load failed", "run_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "ARCHIVE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	if records == nil {
		records = []engine.PeriodRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"run": meta, "periods": records})
}

// finiteStats drops NaN statistics, which JSON cannot represent.
func finiteStats(stats map[string]float64) map[string]float64 {
	for k, v := range stats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			delete(stats, k)
		}
	}
	return stats
}
