package dbmodels

type NotificationCode string

const (
	NotificationRequestAssigned   NotificationCode = "REQUEST_ASSIGNED"
	NotificationRequestUnassigned NotificationCode = "REQUEST_UNASSIGNED"
	NotificationRequestStatus     NotificationCode = "REQUEST_STATUS"
)

// Notification это событие для пользователя; хранится до доставки по websocket
type Notification struct {
	BaseModel
	UserID    string           `gorm:"type:varchar(36);index"`
	Code      NotificationCode `gorm:"type:varchar(50)"`
	Msg       string           `gorm:"type:text"`
	RequestID string           `gorm:"type:varchar(36)"`
}
