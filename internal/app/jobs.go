package app

import (
	"time"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AuditRetention is how long operator log rows are kept.
const AuditRetention = 365 * 24 * time.Hour

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData(time.Now())
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedClearExpireData drops audit rows older than AuditRetention.
func (a *Application) SchedClearExpireData(now time.Time) int64 {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	res := a.gormDB.
		Where("opt_time < ? ", now.Add(-AuditRetention)).
		Delete(&domain.SysOprLog{})
	if res.Error != nil {
		zap.S().Errorf("clear audit log error %s", res.Error.Error())
		return 0
	}
	if res.RowsAffected > 0 {
		zap.L().Info("audit log purged", zap.String("namespace", "jobs"), zap.Int64("rows", res.RowsAffected))
	}
	return res.RowsAffected
}
