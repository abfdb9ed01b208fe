package tracker

import (
	"errors"
	"fmt"
	"net/http"

	"rollcall/internal/auth"
	"rollcall/internal/common"
	"rollcall/internal/tracker/models"

	"github.com/google/uuid"
)

// handleLoginV1 implements the OAuth2 password grant. The username is
// the user's email. A successful response is not enveloped
func (a *application) handleLoginV1(w http.ResponseWriter, r *http.Request) {
	log := common.GetRequestLogger(r)
	if err := r.ParseForm(); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse form body", ErrorInvalidInput)
		return
	}
	if grantType := r.PostForm.Get("grant_type"); grantType != "" && grantType != "password" {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, fmt.Sprintf("unsupported grant_type '%s'", grantType), ErrorInvalidInput)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a username and password", ErrorInvalidInput)
		return
	}

	user, err := a.repository.GetUserByEmail(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to authenticate", ErrorInvalidCredentials)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to load user: %s", err))
		return
	}
	if !auth.ValidatePassword(password, user.PasswordHash) {
		common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to authenticate", ErrorInvalidCredentials)
		return
	}

	token, claims, err := auth.GenerateSessionJwt(auth.GenerateSessionJwtOpts{
		Email:     user.Email,
		Id:        uuid.NewString(),
		IsStudent: user.IsStudent(),
		IsTeacher: user.IsTeacher(),
		Now:       a.now(),
		Secret:    a.sessionSecret,
		Ttl:       a.sessionTtl,
		UserId:    user.Id,
		Username:  user.Name,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to issue session: %s", err))
		return
	}
	log(common.LogLevelInfo, fmt.Sprintf("issued session[%s] to user[%v]", claims.ID, user.Id))

	common.SendHttpRawResponse(w, http.StatusOK, LoginV1Output{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
