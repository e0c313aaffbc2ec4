package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"forkenv/internal/ports"
	"forkenv/internal/types"
)

type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) WriteForkReport(path string, report types.ForkReport) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode fork report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write fork report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadForkReport(path string) (types.ForkReport, error) {
	var report types.ForkReport
	if err := loadYAML(path, "fork report", &report); err != nil {
		return types.ForkReport{}, err
	}
	return report, nil
}

var _ ports.ReportWriterPort = ReportFileAdapter{}
var _ ports.ReportReaderPort = ReportFileAdapter{}
