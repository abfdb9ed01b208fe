package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rollcall/internal/auth"
	"rollcall/internal/common"
	"rollcall/internal/tracker/models"
)

const userAuthRequestContext common.HttpContextKey = "tracker-auth"

// userIdentity is the caller as known to the database, roles come from
// here rather than from the token
type userIdentity struct {
	// SourceIp is the IP address that the request came from
	SourceIp string

	// UserAgent is the user agent of the request
	UserAgent string

	UserId    int64
	Username  string
	StudentId *int64
	TeacherId *int64
}

func getIdentity(r *http.Request) (userIdentity, bool) {
	identity, ok := r.Context().Value(userAuthRequestContext).(userIdentity)
	return identity, ok
}

func (a *application) getRouteAuther() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := common.GetRequestLogger(r)
			authorizationHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to receive an authorization header", ErrorAuthRequired)
				return
			}
			authorizationToken := strings.TrimPrefix(authorizationHeader, "Bearer ")
			claims, err := auth.ValidateSessionJwt(a.sessionSecret, authorizationToken, a.now())
			if err != nil {
				common.SendHttpFailResponse(w, r, http.StatusUnauthorized, fmt.Sprintf("failed to validate session: %s", err), ErrorAuthRequired)
				return
			}
			user, err := a.repository.GetUserById(r.Context(), claims.UserId)
			if err != nil {
				if errors.Is(err, models.ErrorNotFound) {
					common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to find the session's user", ErrorAuthRequired)
					return
				}
				common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to load user: %s", err))
				return
			}
			log(common.LogLevelDebug, fmt.Sprintf("processing request from user[%v]", user.Id))
			identity := userIdentity{
				SourceIp:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
				UserId:    user.Id,
				Username:  user.Email,
				StudentId: user.StudentId,
				TeacherId: user.TeacherId,
			}
			authContext := context.WithValue(r.Context(), userAuthRequestContext, identity)
			next.ServeHTTP(w, r.WithContext(authContext))
		})
	}
}

func requireStudent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := getIdentity(r); !ok || identity.StudentId == nil {
			common.SendHttpFailResponse(w, r, http.StatusForbidden, "only students can do this", ErrorForbiddenRole)
			return
		}
		next(w, r)
	}
}

func requireTeacher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := getIdentity(r); !ok || identity.TeacherId == nil {
			common.SendHttpFailResponse(w, r, http.StatusForbidden, "only teachers can do this", ErrorForbiddenRole)
			return
		}
		next(w, r)
	}
}
