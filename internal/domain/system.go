package domain

import (
	"time"
)

const (
	ActionLogin     = "login"
	ActionLoginFail = "login_fail"
	ActionRegister  = "register"
	ActionLogout    = "logout"
	ActionBeatAdd   = "beat_add"
	ActionCheckout  = "checkout"
)

// SysOprLog is the storefront audit trail.
type SysOprLog struct {
	ID        int64     `json:"id,string"`
	Profile   string    `gorm:"index" json:"profile"`
	OprName   string    `gorm:"index" json:"opr_name"`
	OprIp     string    `json:"opr_ip"`
	OptAction string    `gorm:"index" json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `gorm:"index" json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
