package connectionhub

import (
	"context"
	"time"

	wsmodels "crm-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type clientSession struct {
	conn *websocket.Conn

	// Исходящие события заявок, буферизованы.
	sendCh chan wsmodels.ServerMessage
	stop   func()
}

func newSession(conn *websocket.Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.TODO())
	sess := clientSession{
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan wsmodels.ServerMessage, 1),
	}
	go sess.writeLoop(ctx)
	return sess
}

func (s clientSession) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg, opened := <-s.sendCh:
			if !opened {
				return
			}
			if err := s.write(msg); err != nil {
				log.
					WithField("code", msg.Code).
					WithField("request_id", msg.RequestID).
					WithError(err).
					Error("ошибка отправки события заявки")
			}
		}
	}
}

func (s clientSession) write(msg wsmodels.ServerMessage) error {
	if s.conn.Conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.
		WithField("code", msg.Code).
		WithField("request_id", msg.RequestID).
		Info("отправлено событие заявки")
	return nil
}

func (s clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Error("ошибка закрытия соединения")
	}
}
