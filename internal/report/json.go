package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/webvet/webvet/internal/probe"
)

const schemaVersion = "1.0"

type jsonReport struct {
	SchemaVersion string          `json:"schema_version"`
	RunID         string          `json:"run_id"`
	Metadata      jsonMetadata    `json:"metadata"`
	Findings      []probe.Finding `json:"findings"`
}

type jsonMetadata struct {
	Target    string `json:"target"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	PassCount int    `json:"pass_count"`
	FailCount int    `json:"fail_count"`
	WarnCount int    `json:"warn_count"`
	Success   bool   `json:"success"`
}

// Findings are written in execution order; that order is part of the
// report contract, so no sorting happens here.
func buildJSON(r *Report) jsonReport {
	return jsonReport{
		SchemaVersion: schemaVersion,
		RunID:         r.RunID,
		Metadata: jsonMetadata{
			Target:    r.Target,
			StartTime: r.StartTime.Format(time.RFC3339),
			EndTime:   r.EndTime.Format(time.RFC3339),
			PassCount: r.PassCount(),
			FailCount: r.FailCount(),
			WarnCount: r.WarnCount(),
			Success:   r.Success(),
		},
		Findings: r.Findings(),
	}
}

func SaveJSON(r *Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSON(r))
}

func FormatJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(buildJSON(r), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
