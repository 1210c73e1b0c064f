package task

import (
	"context"
	"log/slog"

	"github.com/angas/weatherbot-go/config"
	"github.com/robfig/cron/v3"
)

// Tasks schedules the recurring work for daemon mode.
type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	DailyReportTask func()
}

func NewTasks(report *DailyReport, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		DailyReportTask: NewDailyReportTask(logger.With(slog.String("task", "daily_report")), report),
	}
}

func (t *Tasks) Run() {
	if _, err := t.cron.AddFunc(t.cnfg.Report.GetRunAt(), t.DailyReportTask); err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
