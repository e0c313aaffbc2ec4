package ports

import "forkenv/internal/types"

type ReportWriterPort interface {
	WriteForkReport(path string, report types.ForkReport) error
}

type ReportReaderPort interface {
	ReadForkReport(path string) (types.ForkReport, error)
}
