package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect reads back a fork report written by Forks.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ReportPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	report, err := s.ReportReader.ReadForkReport(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Report: report}, nil
}
