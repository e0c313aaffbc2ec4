package app

import (
	"forkenv/internal/adapters"
	"forkenv/internal/ports"
)

type Service struct {
	Environments ports.EnvironmentSourcePort
	Seeds        ports.SeedSourcePort
	Requirements ports.RequirementSourcePort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
}

func NewService() Service {
	inputs := adapters.NewInputFileAdapter()
	reports := adapters.NewReportFileAdapter()
	return Service{
		Environments: inputs,
		Seeds:        inputs,
		Requirements: inputs,
		ReportWriter: reports,
		ReportReader: reports,
	}
}
