package driver

import (
	"encoding/json"
	"fmt"

	"cobrust/internal/diag"
	"cobrust/internal/observ"
	"cobrust/internal/source"
)

type timingPayload struct {
	Kind   string `json:"kind"`
	Path   string `json:"path,omitempty"`
	Report observ.Report
}

func (p timingPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string               `json:"kind"`
		Path    string               `json:"path,omitempty"`
		TotalMS float64              `json:"total_ms"`
		Phases  []observ.PhaseReport `json:"phases"`
	}{p.Kind, p.Path, p.Report.TotalMS, p.Report.Phases})
}

// appendTimingDiagnostic добавляет OBS6001 с JSON-описанием фаз в заметке.
// Лимит bag не должен терять тайминги, поэтому при переполнении запись
// вливается через Merge.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.Report.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, msg).
		WithNote(source.NoSpan, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}

// AppendTimings exposes the timings diagnostic to other pipelines.
func AppendTimings(bag *diag.Bag, kind, path string, report observ.Report) {
	appendTimingDiagnostic(bag, timingPayload{Kind: kind, Path: path, Report: report})
}
