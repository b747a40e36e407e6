package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator:
		return true
	}
	return false
}

// User is an operator identity. It exists so imports and follow-ups can record
// who performed them; credential management lives outside this service.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Email    string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	FullName string `gorm:"column:full_name;type:varchar(200);not null"`
	Role     Role   `gorm:"column:role;type:varchar(30);not null;index"`

	IsActive   bool       `gorm:"column:is_active;default:true;index"`
	LastSeenAt *time.Time `gorm:"column:last_seen_at"`
}

func (User) TableName() string {
	return "auth.users"
}

type AuditAction string

const (
	ActionImport AuditAction = "import"
	ActionExport AuditAction = "export"
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`

	// Details carries the event payload, e.g. import counters.
	Details string `gorm:"column:details;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

// Claims is the verified operator identity extracted from a bearer token.
type Claims struct {
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}
