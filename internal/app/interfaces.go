package app

import (
	"github.com/dame6k/beatstore/config"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ProfileCacheProvider provides the open storefront pages per profile
type ProfileCacheProvider interface {
	ProfileCache() *ProfileCache
}

// AuditProvider records operator actions
type AuditProvider interface {
	Audit(entry AuditEntry)
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	ProfileCacheProvider
	AuditProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
