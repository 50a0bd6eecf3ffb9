package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kaustavpaul/membership-card-ctba/internal/appsheet"
	"github.com/kaustavpaul/membership-card-ctba/internal/logging"
	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

// LoadResponse is the result of a roster load: the canonical record set and
// the provenance statistics for the operation.
type LoadResponse struct {
	LoadID  string                `json:"load_id"`
	Source  string                `json:"source"`
	Records []roster.MemberRecord `json:"records"`
	Stats   roster.LoadStats      `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRosterUpload accepts a multipart spreadsheet or CSV upload and runs
// it through the normalization pipeline.
func (s *Server) handleRosterUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.loads.acquire(r.Context()); err != nil {
		s.respondErrorCode(w, r, err, http.StatusServiceUnavailable, "BUSY")
		return
	}
	defer s.loads.release()

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondErrorCode(w, r, fmt.Errorf("file too large or invalid form: %w", err), http.StatusBadRequest, "FILE")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondErrorCode(w, r, fmt.Errorf("no file provided"), http.StatusBadRequest, "FILE")
		return
	}
	defer file.Close()

	sheet := r.FormValue("sheet")
	if sheet == "" {
		sheet = s.cfg.Upload.DefaultSheet
	}

	start := time.Now()
	records, stats, err := roster.LoadMembersReader(file, header.Filename, sheet)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	loadID := uuid.NewString()
	logging.FromContext(r.Context()).Info("roster loaded from file",
		"load_id", loadID,
		"file", header.Filename,
		"source_rows", stats.SourceRows,
		"loaded_rows", stats.LoadedRows,
		"duration", time.Since(start),
	)

	writeJSON(w, http.StatusOK, LoadResponse{
		LoadID:  loadID,
		Source:  "file",
		Records: records,
		Stats:   stats,
	})
}

// memberIDRequest holds the fields a member ID is derived from when the
// source has no authoritative one.
type memberIDRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
}

type memberIDResponse struct {
	MemberID string `json:"member_id"`
}

// handleBuildMemberID derives a member ID from the configured prefix and the
// supplied fields.
func (s *Server) handleBuildMemberID(w http.ResponseWriter, r *http.Request) {
	var req memberIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondErrorCode(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest, "FILE")
		return
	}

	writeJSON(w, http.StatusOK, memberIDResponse{
		MemberID: roster.BuildMemberID(s.cfg.Cards.IDPrefix, req.Name, req.Email, req.MembershipType),
	})
}

// appSheetLoadRequest optionally overrides the configured table or selector
// for a single load.
type appSheetLoadRequest struct {
	Table    string `json:"table,omitempty"`
	Selector string `json:"selector,omitempty"`
}

// handleAppSheetLoad fetches the members table from AppSheet and runs it
// through the same normalization pipeline as file uploads.
func (s *Server) handleAppSheetLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.loads.acquire(r.Context()); err != nil {
		s.respondErrorCode(w, r, err, http.StatusServiceUnavailable, "BUSY")
		return
	}
	defer s.loads.release()

	var req appSheetLoadRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondErrorCode(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest, "FILE")
			return
		}
	}

	cfg := appsheet.Config{
		AppID:          s.cfg.AppSheet.AppID,
		TableName:      s.cfg.AppSheet.TableName,
		AccessKey:      s.cfg.AppSheet.AccessKey,
		Region:         s.cfg.AppSheet.Region,
		Selector:       s.cfg.AppSheet.Selector,
		RunAsUserEmail: s.cfg.AppSheet.RunAsUserEmail,
		Timeout:        s.cfg.AppSheet.Timeout,
		MaxAttempts:    s.cfg.AppSheet.MaxAttempts,
	}
	if req.Table != "" {
		cfg.TableName = req.Table
	}
	if req.Selector != "" {
		cfg.Selector = req.Selector
	}

	client, err := appsheet.NewClient(cfg)
	if err != nil {
		s.respondErrorCode(w, r, err, http.StatusBadRequest, "FILE")
		return
	}

	start := time.Now()
	records, stats, err := appsheet.LoadMembers(r.Context(), client)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	loadID := uuid.NewString()
	logging.FromContext(r.Context()).Info("roster loaded from appsheet",
		"load_id", loadID,
		"table", cfg.TableName,
		"source_rows", stats.SourceRows,
		"loaded_rows", stats.LoadedRows,
		"duration", time.Since(start),
	)

	writeJSON(w, http.StatusOK, LoadResponse{
		LoadID:  loadID,
		Source:  "appsheet",
		Records: records,
		Stats:   stats,
	})
}
