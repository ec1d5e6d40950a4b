package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"crm-backend/config"
	"crm-backend/db"
	"crm-backend/lib/file-storage/store"
	dbmodels "crm-backend/models/db"
	s3client "crm-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Upload(ctx context.Context, workspaceID, requestID, userID, fileName, contentType string, file []byte) (id string, err error)
	Get(ctx context.Context, workspaceID, fileID string) (body []byte, rec *dbmodels.FileStorage, err error)
	List(workspaceID, requestID string) (list []dbmodels.FileStorage, err error)
	Delete(ctx context.Context, workspaceID, fileID string) error
	DeleteByRequest(ctx context.Context, workspaceID, requestID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		fileStore: store.NewInstance(db.DB),
		client:    s3client.Client,
	}
}

type impl struct {
	fileStore store.Provider
	client    *minio.Client
}

func (i impl) objectName(workspaceID, fileID string) string {
	return fmt.Sprintf("%s/%s", workspaceID, fileID)
}

func (i impl) Upload(ctx context.Context, workspaceID, requestID, userID, fileName, contentType string, file []byte) (id string, err error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.FileStorage{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		RequestID:   requestID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(file)),
		UploadedBy:  userID,
	}
	id, err = i.fileStore.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения описания файла")
	}
	_, err = i.client.PutObject(ctx, config.Conf.S3.Bucket, i.objectName(workspaceID, id), bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		delErr := i.fileStore.Delete(workspaceID, id)
		if delErr != nil {
			log.WithField("file_id", id).WithError(delErr).Error("ошибка удаления описания незагруженного файла")
		}
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	log.
		WithField("request_id", requestID).
		WithField("file_id", id).
		Info("загружен файл заявки")
	return id, nil
}

func (i impl) Get(ctx context.Context, workspaceID, fileID string) (body []byte, rec *dbmodels.FileStorage, err error) {
	rec, err = i.fileStore.GetByID(workspaceID, fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("файл не найден")
	}
	object, err := i.client.GetObject(ctx, config.Conf.S3.Bucket, i.objectName(workspaceID, fileID), minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	defer object.Close()
	body, err = io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return body, rec, nil
}

func (i impl) List(workspaceID, requestID string) (list []dbmodels.FileStorage, err error) {
	return i.fileStore.ListByRequest(workspaceID, requestID)
}

func (i impl) Delete(ctx context.Context, workspaceID, fileID string) error {
	err := i.client.RemoveObject(ctx, config.Conf.S3.Bucket, i.objectName(workspaceID, fileID), minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return i.fileStore.Delete(workspaceID, fileID)
}

// DeleteByRequest удаляет вложения при удалении заявки.
// Ошибки по отдельным файлам только логируются, удаление заявки не блокируется.
func (i impl) DeleteByRequest(ctx context.Context, workspaceID, requestID string) error {
	list, err := i.fileStore.ListByRequest(workspaceID, requestID)
	if err != nil {
		return err
	}
	for _, rec := range list {
		err = i.Delete(ctx, workspaceID, rec.ID)
		if err != nil {
			log.
				WithField("request_id", requestID).
				WithField("file_id", rec.ID).
				WithError(err).
				Error("ошибка удаления вложения заявки")
		}
	}
	return nil
}
