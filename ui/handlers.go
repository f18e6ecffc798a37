package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"

	"respcheck/app"
	"respcheck/internal/detect"
	"respcheck/internal/errors"
)

const maxUploadBytes = 64 << 20

var allowedDataExtensions = map[string]bool{".csv": true, ".xlsx": true}

// analyzeResponse mirrors the summary contract the frontend consumes.
type analyzeResponse struct {
	Success    bool            `json:"success"`
	Results    analysisSummary `json:"results"`
	SyntaxFile string          `json:"syntax_file"`
	ReportHTML string          `json:"report_html"`
	RuntimeMs  int64           `json:"runtime_ms"`
	Warnings   []string        `json:"warnings,omitempty"`
}

type analysisSummary struct {
	TotalRespondents int    `json:"total_respondents"`
	BatteryLength    int    `json:"battery_length"`
	IDColumn         string `json:"id_column"`
	Speeders         struct {
		Count        int     `json:"count"`
		ThresholdSec float64 `json:"threshold_sec"`
		ThresholdMin float64 `json:"threshold_min"`
	} `json:"speeders"`
	SuspiciousOpen struct {
		Count           int `json:"count"`
		HighRiskCount   int `json:"high_risk_count"`
		MediumRiskCount int `json:"medium_risk_count"`
	} `json:"suspicious_open"`
	StraightLiners struct {
		Count int `json:"count"`
	} `json:"straight_liners"`
	RiskGroups struct {
		AllThree         int `json:"all_three"`
		SpeedersOpen     int `json:"speeders_open"`
		SpeedersStraight int `json:"speeders_straight"`
		OpenStraight     int `json:"open_straight"`
		SpeedersOnly     int `json:"speeders_only"`
		OpenOnly         int `json:"open_only"`
		StraightOnly     int `json:"straight_only"`
	} `json:"risk_groups"`
	Recommendations struct {
		HighRisk   int `json:"high_risk"`
		MediumRisk int `json:"medium_risk"`
		LowRisk    int `json:"low_risk"`
	} `json:"recommendations"`
	TotalBad int `json:"total_bad"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "respcheck",
	})
}

// handleAnalyze accepts a multipart upload with a required "data" file
// (CSV/XLSX) and an optional "questionnaire" text file, runs the detection
// pipeline and returns the summary plus the name of the generated syntax file.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, errors.InvalidInput("invalid multipart request"))
		return
	}

	timestamp := time.Now().Format("20060102_150405")

	dataPath, err := a.saveUpload(r, "data", timestamp)
	if err != nil {
		writeError(w, err)
		return
	}
	defer os.Remove(dataPath)

	if !allowedDataExtensions[strings.ToLower(filepath.Ext(dataPath))] {
		writeError(w, errors.InvalidInput("data file must be .csv or .xlsx"))
		return
	}

	questionnairePath, err := a.saveUpload(r, "questionnaire", timestamp)
	if err != nil {
		if errors.GetCode(err) != errors.CodeInvalidInput {
			writeError(w, err)
			return
		}
		questionnairePath = "" // optional upload
	} else {
		defer os.Remove(questionnairePath)
	}

	output, err := a.service.Analyze(r.Context(), app.AnalysisRequest{
		DataPath:          dataPath,
		QuestionnairePath: questionnairePath,
	})
	if err != nil {
		a.log.Error("[UI] analysis failed: %v", err)
		writeError(w, err)
		return
	}

	syntaxFile := fmt.Sprintf("delete_bad_%s.sps", timestamp)
	syntaxPath := filepath.Join(a.cfg.Paths.UploadDir, syntaxFile)
	if err := os.WriteFile(syntaxPath, []byte(output.Syntax), 0o644); err != nil {
		writeError(w, errors.Wrap(err, "failed to write syntax file"))
		return
	}

	resp := analyzeResponse{
		Success:    true,
		Results:    summarize(output.Result),
		SyntaxFile: syntaxFile,
		ReportHTML: string(markdown.ToHTML([]byte(output.Report), nil, nil)),
		RuntimeMs:  output.RuntimeMs,
		Warnings:   output.Result.Warnings,
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDownload serves a previously generated syntax file from the upload
// directory. Only flat .sps filenames are accepted.
func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".sps") {
		writeError(w, errors.InvalidInput("invalid file name"))
		return
	}

	path := filepath.Join(a.cfg.Paths.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, errors.NotFound("file "+name))
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, path)
}

// saveUpload stores one multipart file under the upload directory with a
// timestamp prefix and returns its path.
func (a *App) saveUpload(r *http.Request, field, timestamp string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", errors.InvalidInput("missing upload field: " + field)
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		return "", errors.InvalidInput("invalid file name for field: " + field)
	}

	path := filepath.Join(a.cfg.Paths.UploadDir, timestamp+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, "failed to store upload")
	}
	return path, nil
}

func summarize(result *detect.AnalysisResult) analysisSummary {
	var s analysisSummary
	s.TotalRespondents = result.TotalRespondents
	s.BatteryLength = result.BatteryLength
	s.IDColumn = result.IDColumn
	s.Speeders.Count = len(result.Speeders)
	s.Speeders.ThresholdSec = result.SpeederThresholdSec
	s.Speeders.ThresholdMin = result.SpeederThresholdMin
	s.SuspiciousOpen.HighRiskCount = len(result.OpenHighRisk)
	s.SuspiciousOpen.MediumRiskCount = len(result.OpenMediumRisk)
	s.SuspiciousOpen.Count = s.SuspiciousOpen.HighRiskCount + s.SuspiciousOpen.MediumRiskCount
	s.StraightLiners.Count = len(result.StraightLiners)
	s.RiskGroups.AllThree = len(result.RiskGroups.AllThree)
	s.RiskGroups.SpeedersOpen = len(result.RiskGroups.SpeedersOpen)
	s.RiskGroups.SpeedersStraight = len(result.RiskGroups.SpeedersStraight)
	s.RiskGroups.OpenStraight = len(result.RiskGroups.OpenStraight)
	s.RiskGroups.SpeedersOnly = len(result.RiskGroups.SpeedersOnly)
	s.RiskGroups.OpenOnly = len(result.RiskGroups.OpenOnly)
	s.RiskGroups.StraightOnly = len(result.RiskGroups.StraightOnly)
	s.Recommendations.HighRisk = len(result.Recommendations.HighRisk)
	s.Recommendations.MediumRisk = len(result.Recommendations.MediumRisk)
	s.Recommendations.LowRisk = len(result.Recommendations.LowRisk)
	s.TotalBad = len(result.AllBad)
	return s
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode failure here is unrecoverable.
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeParseError, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}
