package models

import "strings"

type RequestStatus string

const (
	RequestStatusNew       RequestStatus = "new"
	RequestStatusAssigned  RequestStatus = "assigned"
	RequestStatusInProcess RequestStatus = "in_process"
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusDone      RequestStatus = "done"
)

// RequestStatuses хранит порядок не случайно: первый элемент используется как значение по умолчанию
var RequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusAssigned,
	RequestStatusInProcess,
	RequestStatusPending,
	RequestStatusDone,
}

var statusHumanName = map[RequestStatus]string{
	RequestStatusNew:       "Новая",
	RequestStatusAssigned:  "Назначена",
	RequestStatusInProcess: "В работе",
	RequestStatusPending:   "Ожидание",
	RequestStatusDone:      "Завершена",
}

func ParseRequestStatus(value string) (RequestStatus, bool) {
	status := RequestStatus(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range RequestStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// IsAllowChange: переходы между статусами не ограничены,
// в том числе done -> new, допустимость решает только проверка прав
func (s RequestStatus) IsAllowChange(to RequestStatus) bool {
	_, ok := ParseRequestStatus(string(to))
	return ok
}

func (s RequestStatus) ToHuman() string {
	if human, exist := statusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type RequestPriority string

const (
	RequestPriorityLow      RequestPriority = "low"
	RequestPriorityMedium   RequestPriority = "medium"
	RequestPriorityHigh     RequestPriority = "high"
	RequestPriorityCritical RequestPriority = "critical"
)

var RequestPriorities = []RequestPriority{
	RequestPriorityLow,
	RequestPriorityMedium,
	RequestPriorityHigh,
	RequestPriorityCritical,
}

// ParseRequestPriority: неизвестный приоритет заменяется на medium
func ParseRequestPriority(value string) RequestPriority {
	priority := RequestPriority(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range RequestPriorities {
		if priority == known {
			return priority
		}
	}
	return RequestPriorityMedium
}

// MetaKeyDoneAt хранит момент завершения заявки в метаданных
const MetaKeyDoneAt = "done_at"

const (
	MetaKeyRequestID  = "request_id"
	MetaKeyRecordID   = "record_id"
	MetaKeyTemplateID = "template_id"
)
