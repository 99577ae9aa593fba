package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/customer_dashboard/config"
	"github.com/pivolan/customer_dashboard/domain/models"
)

func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file in form data")
		return
	}
	defer file.Close()

	// An id issued earlier (upload link from the bot, or a previous upload)
	// replaces that session's dataset. A missing id starts a fresh session.
	uid := r.FormValue("uuid")

	dir := filepath.Join(config.GetConfig().UploadDir, uid)
	if err := os.MkdirAll(dir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, "cannot store upload: "+err.Error())
		return
	}
	filePath := filepath.Join(dir, filepath.Base(header.Filename))
	dst, err := os.Create(filePath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot store upload: "+err.Error())
		return
	}
	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "cannot store upload: "+err.Error())
		return
	}
	dst.Close()

	dataset, err := ingestFile(filePath)
	if err != nil {
		writeIngestError(w, err)
		return
	}

	sess := store.Put(uid, 0, dataset)
	log.Printf("upload %s: %s, %d rows", sess.ID, dataset.Source, len(dataset.Rows))

	if sess.ChatID != 0 && bot != nil {
		msg := tgbotapi.NewMessage(sess.ChatID, "Your file is uploaded, sending the summary")
		bot.Send(msg)
		go sendDashboardReport(bot, sess.ChatID, sess)
	}

	data := ComputeDashboard(dataset, nil, regionTable)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uid":     sess.ID,
		"file":    dataset.Source,
		"rows":    len(dataset.Rows),
		"summary": data.Summary,
	})
}

// ingestFile unwraps a stored upload if it is an archive and parses it.
func ingestFile(filePath string) (models.Dataset, error) {
	unpackedFilePath, err := unpackArchive(filePath)
	if err != nil {
		return models.Dataset{}, &FormatError{Reason: "cannot unpack archive: " + err.Error()}
	}
	if unpackedFilePath != "" {
		filePath = unpackedFilePath
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Dataset{}, err
	}
	return ImportDataset(data, filepath.Base(filePath))
}

func handleAPISummary(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, data.Summary)
}

func handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	resp := map[string]interface{}{
		"records":  data.View,
		"no_match": data.NoMatch,
	}
	if data.NoMatch {
		resp["message"] = ErrNoMatch.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleAPISalespersons(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"salesperson_counts": data.SalespersonCounts})
}

func handleAPIRegions(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"region_counts": data.RegionCounts})
}

func handleAPIRank(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	spec := ParseRankSpec(r.URL.Query().Get("spec"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"direction": spec.Direction,
		"n":         spec.N,
		"entries":   RankCounts(data.SalespersonCounts, spec),
	})
}

func handleAPIUnassigned(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"unassigned": data.Unassigned})
}

func handleAPIGeo(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"geo": data.Geo})
}

func handleDownloadExcel(w http.ResponseWriter, r *http.Request) {
	data, sess, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	content, err := ExportExcel(sess.Dataset.Columns, data.Clean)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="customers.xlsx"`)
	w.Write(content)
}

func handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	data, sess, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	content, err := ExportCSV(sess.Dataset.Columns, data.Clean)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="customers.csv"`)
	w.Write(content)
}

func handleCharts(w http.ResponseWriter, r *http.Request) {
	data, _, ok := dashboardFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderChartsPage(w, data); err != nil {
		log.Printf("charts render: %v", err)
	}
}

// dashboardFromRequest resolves the session and filter parameters of an API
// call and recomputes the pipeline. On failure it has already written the
// error response.
func dashboardFromRequest(w http.ResponseWriter, r *http.Request) (DashboardData, *DashboardSession, bool) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		writeError(w, http.StatusBadRequest, "uid parameter required")
		return DashboardData{}, nil, false
	}
	sess, ok := store.Get(uid)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session, upload a file first")
		return DashboardData{}, nil, false
	}

	criteria := criteriaFromRequest(r, Clean(sess.Dataset))
	data := ComputeDashboard(sess.Dataset, criteria, regionTable)
	return data, sess, true
}

// criteriaFromRequest reads filter query parameters. No parameters means
// the default criteria; salesperson=- forces the empty selection.
func criteriaFromRequest(r *http.Request, clean []models.CustomerRecord) *models.FilterCriteria {
	q := r.URL.Query()
	salespersons := q["salesperson"]
	regions := q["region"]
	query := strings.TrimSpace(q.Get("q"))

	if len(salespersons) == 0 && len(regions) == 0 && query == "" {
		return nil
	}

	criteria := DefaultCriteria(clean)
	if len(salespersons) > 0 {
		if len(salespersons) == 1 && salespersons[0] == "-" {
			criteria.Salespersons = nil
		} else {
			criteria.Salespersons = salespersons
		}
	}
	if len(regions) > 0 {
		criteria.Regions = regions
	}
	criteria.NameQuery = query
	return &criteria
}

func writeIngestError(w http.ResponseWriter, err error) {
	var formatErr *FormatError
	switch {
	case errors.As(err, &formatErr):
		writeError(w, http.StatusBadRequest, formatErr.Error())
	case errors.Is(err, ErrEmptyInput):
		writeError(w, http.StatusBadRequest, ErrEmptyInput.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
