package app

import (
	"time"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/pkg/common"
	"go.uber.org/zap"
)

// AuditEntry is one operator action to record.
type AuditEntry struct {
	Profile string
	Name    string
	IP      string
	Action  string
	Desc    string
}

// Audit stores entry in the operator log. Failures are logged only, the
// storefront never depends on the audit trail.
func (a *Application) Audit(entry AuditEntry) {
	if a.gormDB == nil {
		return
	}
	row := domain.SysOprLog{
		ID:        common.UUIDint64(),
		Profile:   entry.Profile,
		OprName:   entry.Name,
		OprIp:     entry.IP,
		OptAction: entry.Action,
		OptDesc:   entry.Desc,
		OptTime:   time.Now(),
	}
	if err := a.gormDB.Create(&row).Error; err != nil {
		zap.L().Warn("audit write failed",
			zap.String("namespace", "audit"),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}
