package notifyhandler

import (
	"fmt"
	"time"

	"crm-backend/config"
	"crm-backend/db"
	"crm-backend/lib/notify/store"
	smtpclient "crm-backend/lib/smtp"
	connectionhub "crm-backend/lib/ws/hub/connection-hub"
	dbmodels "crm-backend/models/db"
	wsmodels "crm-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	RequestAssigned(req dbmodels.Request, assignee dbmodels.WorkspaceUser)
	RequestUnassigned(req dbmodels.Request, former dbmodels.WorkspaceUser)
	RequestStatusChanged(req dbmodels.Request, recipients []dbmodels.WorkspaceUser)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		notifyStore: store.NewInstance(db.DB),
	}
}

type impl struct {
	notifyStore store.Provider
}

func (i impl) RequestAssigned(req dbmodels.Request, assignee dbmodels.WorkspaceUser) {
	msg := fmt.Sprintf("Вам назначена заявка: %v", req.Title)
	i.send(assignee, dbmodels.NotificationRequestAssigned, msg, req.ID)
}

func (i impl) RequestUnassigned(req dbmodels.Request, former dbmodels.WorkspaceUser) {
	msg := fmt.Sprintf("С вас снята заявка: %v", req.Title)
	i.send(former, dbmodels.NotificationRequestUnassigned, msg, req.ID)
}

func (i impl) RequestStatusChanged(req dbmodels.Request, recipients []dbmodels.WorkspaceUser) {
	msg := fmt.Sprintf("Заявка «%v» переведена в статус «%v»", req.Title, req.Status.ToHuman())
	for _, recipient := range recipients {
		i.send(recipient, dbmodels.NotificationRequestStatus, msg, req.ID)
	}
}

// доставка уведомления: онлайн пользователю пуш, оффлайн в хранилище до
// переподключения, письмо в обоих случаях
func (i impl) send(user dbmodels.WorkspaceUser, code dbmodels.NotificationCode, msg, requestID string) {
	logger := log.
		WithField("user_id", user.ID).
		WithField("request_id", requestID)
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(user.ID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID:  user.ID,
			Time:      time.Now().Format("02.01.2006 15:04:05"),
			Code:      string(code),
			Msg:       msg,
			RequestID: requestID,
		})
	} else {
		_, err := i.notifyStore.Create(dbmodels.Notification{
			UserID:    user.ID,
			Code:      code,
			Msg:       msg,
			RequestID: requestID,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка сохранения уведомления")
		}
	}
	if user.Email != "" && smtpclient.Instance != nil {
		err := smtpclient.Instance.SendEMail(config.Conf.Smtp.From, user.Email, msg, "Заявки")
		if err != nil {
			logger.WithError(err).Warn("ошибка отправки письма с уведомлением")
		}
	}
}
