package app

import (
	"os"
	"path"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/dame6k/beatstore/config"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig    *config.AppConfig
	gormDB       *gorm.DB
	boltDB       *store.BoltDB
	sched        *cron.Cron
	profileCache *ProfileCache
}

// Ensure Application implements all interfaces
var (
	_ DBProvider           = (*Application)(nil)
	_ ConfigProvider       = (*Application)(nil)
	_ SchedulerProvider    = (*Application)(nil)
	_ ProfileCacheProvider = (*Application)(nil)
	_ AuditProvider        = (*Application)(nil)
	_ AppContext           = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

// OverrideStorage opens the profile store at path instead of the
// configured one (used in tests).
func (a *Application) OverrideStorage(path string) error {
	bolt, err := store.OpenBolt(path)
	if err != nil {
		return err
	}
	a.boltDB = bolt
	a.profileCache = NewProfileCache(bolt, a.pageOptions()...)
	return nil
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	a.gormDB, err = getDatabase(cfg.Database, cfg.GetDataDir())
	if err != nil {
		return err
	}
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.boltDB, err = store.OpenBolt(cfg.GetStoragePath())
	if err != nil {
		return errors.Wrap(err, "open profile storage")
	}
	zap.S().Infof("Profile storage opened: %s", cfg.GetStoragePath())

	a.profileCache = NewProfileCache(a.boltDB, a.pageOptions()...)

	a.initJob()
	return nil
}

// initLogger replaces the global zap logger. Production mode logs JSON,
// otherwise console lines; with file output enabled a rotated JSON file is
// teed alongside stdout.
func initLogger(cfg *config.AppConfig) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.System.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if cfg.Logger.Mode == "production" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)}

	if cfg.Logger.FileEnable {
		filename := cfg.Logger.Filename
		if filename == "" {
			filename = path.Join(cfg.GetLogDir(), cfg.System.Appid+".log")
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filename,
				MaxSize:    64,
				MaxBackups: 7,
				MaxAge:     30,
			}),
			level,
		))
	}

	zap.ReplaceGlobals(zap.New(zapcore.NewTee(cores...), zap.AddCaller()))
}

func (a *Application) pageOptions() []page.Option {
	return []page.Option{page.WithMaxUpload(a.appConfig.MaxUploadBytes())}
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("BEATSTORE_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// ProfileCache returns the open pages per profile
func (a *Application) ProfileCache() *ProfileCache {
	return a.profileCache
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.profileCache != nil {
		a.profileCache.Stop()
	}
	if a.boltDB != nil {
		if err := a.boltDB.Close(); err != nil {
			zap.S().Error(err)
		}
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
