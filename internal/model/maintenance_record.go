package model

import "time"

// 维护记录类型
const (
	RecordTypeRepair   = "repair"
	RecordTypeSchedule = "schedule"
)

// 维护记录状态
const (
	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in-progress"
	MaintenanceCompleted  = "completed"
)

// MaintenanceRecord 设施维修/保养记录表 — 对应 maintenance_record
type MaintenanceRecord struct {
	ID                uint       `gorm:"primaryKey;autoIncrement"                      json:"id"`
	Title             string     `gorm:"type:varchar(255);not null"                    json:"title"`
	Facility          string     `gorm:"type:varchar(100);not null"                    json:"facility"`
	RecordType        string     `gorm:"type:varchar(50);not null"                     json:"record_type"`
	Description       *string    `gorm:"type:text"                                     json:"description,omitempty"`
	StartDate         time.Time  `gorm:"not null"                                      json:"start_date"`
	EndDate           *time.Time `gorm:""                                              json:"end_date,omitempty"`
	Status            string     `gorm:"type:varchar(50);not null;default:'scheduled'" json:"status"`
	ResponsiblePerson *string    `gorm:"type:varchar(100)"                             json:"responsible_person,omitempty"`
	BaseModel
}

// TableName 指定表名
func (MaintenanceRecord) TableName() string { return "maintenance_record" }

// IsValidRecordType 校验记录类型
func IsValidRecordType(t string) bool {
	return oneOf(t, RecordTypeRepair, RecordTypeSchedule)
}

// IsValidMaintenanceStatus 校验维护状态
func IsValidMaintenanceStatus(s string) bool {
	return oneOf(s, MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted)
}

// PeriodValid 结束时间存在时不得早于开始时间
func (m *MaintenanceRecord) PeriodValid() bool {
	return m.EndDate == nil || !m.EndDate.Before(m.StartDate)
}
