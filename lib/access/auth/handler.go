package authhandler

import (
	"time"

	"crm-backend/config"
	"crm-backend/db"
	"crm-backend/lib/access/users/store"
	authutils "crm-backend/lib/utils/auth-utils"
	accessapimodels "crm-backend/models/api/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(request accessapimodels.LoginRequest) (resp accessapimodels.JWTResponse, err error)
	Refresh(refreshToken string) (resp accessapimodels.JWTResponse, err error)
	Me(userID string) (user accessapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: store.NewInstance(db.DB),
	}
}

type impl struct {
	userStore store.Provider
}

func (i impl) Login(request accessapimodels.LoginRequest) (resp accessapimodels.JWTResponse, err error) {
	logger := log.WithField("email", request.Email)
	user, err := i.userStore.FindByEmail(request.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска пользователя при входе")
		return resp, err
	}
	if user == nil || !authutils.CheckPassword(user.Password, request.Password) {
		return resp, errors.New("неверная почта или пароль")
	}
	if !user.IsActive {
		return resp, errors.New("пользователь заблокирован")
	}
	resp, err = i.issueTokens(user.ID)
	if err != nil {
		return resp, err
	}
	updMap := map[string]interface{}{
		"last_login": time.Now(),
	}
	if updErr := i.userStore.Update(user.WorkspaceID, user.ID, updMap); updErr != nil {
		logger.WithError(updErr).Warn("не удалось обновить время входа")
	}
	logger.WithField("user_id", user.ID).Info("пользователь вошёл в систему")
	return resp, nil
}

func (i impl) Refresh(refreshToken string) (resp accessapimodels.JWTResponse, err error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("неверный метод подписи токена")
		}
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return resp, errors.New("refresh token недействителен")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return resp, errors.New("refresh token недействителен")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return resp, errors.New("refresh token недействителен")
	}
	return i.issueTokens(sub)
}

func (i impl) Me(userID string) (user accessapimodels.UserView, err error) {
	rec, err := i.userStore.GetByID(userID)
	if err != nil {
		return user, err
	}
	if rec == nil {
		return user, errors.New("пользователь не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) issueTokens(userID string) (resp accessapimodels.JWTResponse, err error) {
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return resp, err
	}
	if user == nil {
		return resp, errors.New("пользователь не найден")
	}
	departmentID := ""
	if user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.WorkspaceID, departmentID, user.Role.Normalized())
	if err != nil {
		return resp, errors.Wrap(err, "ошибка выпуска access token")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return resp, errors.Wrap(err, "ошибка выпуска refresh token")
	}
	return accessapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
