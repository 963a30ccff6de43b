package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Notification is a stored in-app notification record. Delivery channels are
// out of scope; this table is the source of truth for the inbox.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Title     string                 `gorm:"column:title;not null"`
	Message   string                 `gorm:"column:message;not null"`
	Type      enums.NotificationType `gorm:"column:type;type:notification_type;not null"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false"`
	Data      json.RawMessage        `gorm:"column:data;type:jsonb"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
