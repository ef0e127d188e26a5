package report

import (
	"context"
	"fmt"

	"github.com/carson-networks/spendwise/internal/export"
	"github.com/carson-networks/spendwise/internal/handlers/v1/apierror"
	"github.com/carson-networks/spendwise/internal/logging"
)

type ExportInput struct {
	Period string `query:"period" default:"month" enum:"week,month,year" doc:"Report window ending now"`
	Format string `query:"format" default:"xlsx" enum:"xlsx,pdf" doc:"Document format"`
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *ReportHandler) export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, apierror.From(err, "invalid format")
	}

	r, err := h.load(ctx, input.Period)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("format", string(format))
		stopTimer = logData.AddTiming("renderMs")
	}
	data, err := export.Render(r, format)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to render report")
	}

	if logData != nil {
		logData.AddData("bytes", len(data))
	}
	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", format.FileName(r)),
		Body:               data,
	}, nil
}
