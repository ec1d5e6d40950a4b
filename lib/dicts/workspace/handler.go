package workspaceprovider

import (
	"crm-backend/db"
	"crm-backend/lib/dicts/workspace/store"

	"github.com/pkg/errors"
)

type Provider interface {
	GetName(id string) (name string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: store.NewInstance(db.DB),
	}
}

type impl struct {
	store store.Provider
}

func (i impl) GetName(id string) (name string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New("workspace не найден")
	}
	return rec.Name, nil
}
