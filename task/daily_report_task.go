package task

import (
	"context"
	"log/slog"
	"time"
)

func NewDailyReportTask(logger *slog.Logger, report *DailyReport) func() {
	return func() {
		logger.Debug("running daily report task...")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := report.Run(ctx); err != nil {
			logger.Error("daily report task error", slog.Any("error", err))
			return
		}

		logger.Info("daily report task done")
	}
}
