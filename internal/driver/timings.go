package driver

import (
	"encoding/json"
	"fmt"

	"cdoc/internal/diag"
	"cdoc/internal/observ"
	"cdoc/internal/pipeline"
	"cdoc/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// stageReport converts batch stage totals into a timer report.
func stageReport(t pipeline.Timings) observ.Report {
	timer := observ.NewTimer()
	for _, stage := range pipeline.Stages {
		if t.Has(stage) {
			timer.Add(string(stage), t.Duration(stage), "")
		}
	}
	return timer.Report()
}

// appendTimingDiagnostic adds an ObsTimings info diagnostic. The limit of the
// bag is raised when needed: timings are requested explicitly and must not be
// dropped.
func appendTimingDiagnostic(bag *diag.Bag, file source.FileID, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "batch"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: file}, msg).
		WithNote(source.Span{File: file}, string(data))

	if bag.Len() < bag.Cap() {
		bag.Add(entry)
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}

// AppendTimings adds one timing diagnostic for the batch to bag. file is
// usually a virtual "<timings>" entry of the run's FileSet.
func AppendTimings(bag *diag.Bag, file source.FileID, t pipeline.Timings) {
	report := stageReport(t)
	appendTimingDiagnostic(bag, file, timingPayload{Kind: "batch", TotalMS: report.TotalMS, Phases: report.Phases})
}
