// Package handler — export.go implements GET /api/export.
// Returns every facility with its location and tags as a flat table.
// Supports ?format=json (default), ?format=csv and ?format=xlsx.
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// exportTagSeparator joins a row's tags in the CSV and spreadsheet exports.
const exportTagSeparator = "|"

// exportHeaders defines the column names written as the first row of any
// CSV or spreadsheet export.
var exportHeaders = []string{
	"facility_id", "facility_name", "creation_date",
	"city", "address", "zip_code", "country_code", "phone_number",
	"tags",
}

const exportSheet = "Facilities"

// ExportRowResponse is the JSON form of domain.ExportRow.
type ExportRowResponse struct {
	FacilityID   int64     `json:"facility_id"`
	FacilityName string    `json:"facility_name"`
	CreationDate time.Time `json:"creation_date"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	ZipCode      string    `json:"zip_code"`
	CountryCode  string    `json:"country_code"`
	PhoneNumber  string    `json:"phone_number"`
	Tags         []string  `json:"tags"`
}

// GetExport handles GET /api/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := bindOptionalQuery(r, "format")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}
	f := strings.ToLower(derefString(format))
	switch f {
	case "", "json", "csv", "xlsx":
	default:
		writeJSON(w, http.StatusBadRequest, parameterBody(fmt.Errorf("unsupported format %q: want json, csv or xlsx", f)))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err, "no data")
		return
	}

	switch f {
	case "csv":
		writeAttachment(w, "text/csv", "facilities.csv", buildCSV(rows))
	case "xlsx":
		body, err := buildXLSX(rows)
		if err != nil {
			s.respondError(w, r, err, "no data")
			return
		}
		writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "facilities.xlsx", body)
	default:
		out := make([]ExportRowResponse, len(rows))
		for i, row := range rows {
			out[i] = exportRowToResponse(row)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}

// buildCSV encodes rows as CSV.
// Tags within a row are joined with exportTagSeparator.
func buildCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	w.Write(exportHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(exportRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

// buildXLSX writes rows to a single-sheet workbook with a bold, frozen header.
func buildXLSX(rows []domain.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: rename sheet: %w", err)
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: header style: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: %w", err)
		}
		values := []any{
			r.FacilityID,
			r.FacilityName,
			r.CreationDate.UTC().Format(time.RFC3339),
			r.City,
			r.Address,
			r.ZipCode,
			r.CountryCode,
			r.PhoneNumber,
			strings.Join(r.Tags, exportTagSeparator),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: write: %w", err)
	}
	return buf.Bytes(), nil
}

// exportRecord encodes a domain.ExportRow as a flat string slice.
func exportRecord(r domain.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.FacilityID, 10),
		r.FacilityName,
		r.CreationDate.UTC().Format(time.RFC3339),
		r.City,
		r.Address,
		r.ZipCode,
		r.CountryCode,
		r.PhoneNumber,
		strings.Join(r.Tags, exportTagSeparator),
	}
}

// exportRowToResponse maps a domain.ExportRow to its JSON form.
// Tags is never null in the output.
func exportRowToResponse(r domain.ExportRow) ExportRowResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return ExportRowResponse{
		FacilityID:   r.FacilityID,
		FacilityName: r.FacilityName,
		CreationDate: r.CreationDate,
		City:         r.City,
		Address:      r.Address,
		ZipCode:      r.ZipCode,
		CountryCode:  r.CountryCode,
		PhoneNumber:  r.PhoneNumber,
		Tags:         tags,
	}
}
