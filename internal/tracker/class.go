package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"rollcall/internal/auth"
	"rollcall/internal/common"
	"rollcall/internal/tracker/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// loadClassSession writes the failure response itself and returns nil
// when the class session cannot be used
func (a *application) loadClassSession(w http.ResponseWriter, r *http.Request, classSessionId int64) *models.ClassSession {
	classSession, err := a.repository.GetClassSession(r.Context(), classSessionId)
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, fmt.Sprintf("class session[%v] does not exist", classSessionId), ErrorClassSessionNotFound)
			return nil
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to load class session[%v]: %s", classSessionId, err))
		return nil
	}
	return classSession
}

func (a *application) handleCreateChallengeV1(w http.ResponseWriter, r *http.Request) {
	log := common.GetRequestLogger(r)
	identity, _ := getIdentity(r)
	studentId := *identity.StudentId

	var input CreateChallengeV1Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	if input.ClassSessionId <= 0 || input.Password == "" {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive id_aula and password", ErrorInvalidInput)
		return
	}
	now := a.now()
	if !a.limiter.Allow(studentId, now) {
		countChallenge(ErrorRateLimited.Error())
		common.SendHttpFailResponse(w, r, http.StatusTooManyRequests, fmt.Sprintf("student[%v] is requesting challenges too quickly", studentId), ErrorRateLimited)
		return
	}

	classSession := a.loadClassSession(w, r, input.ClassSessionId)
	if classSession == nil {
		countChallenge(ErrorClassSessionNotFound.Error())
		return
	}
	if !classSession.IsActiveAt(now) {
		countChallenge(ErrorClassSessionInactive.Error())
		common.SendHttpFailResponse(w, r, http.StatusConflict, fmt.Sprintf("class session[%v] is not taking place", classSession.Id), ErrorClassSessionInactive)
		return
	}
	isEnrolled, err := a.repository.IsEnrolled(r.Context(), studentId, classSession.CourseUnitId)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to check enrolment: %s", err))
		return
	}
	if !isEnrolled {
		countChallenge(ErrorNotEnrolled.Error())
		common.SendHttpFailResponse(w, r, http.StatusForbidden, fmt.Sprintf("student[%v] is not enrolled in course unit[%v]", studentId, classSession.CourseUnitId), ErrorNotEnrolled)
		return
	}
	isPasswordValid, err := auth.ValidateClassPassword(classSession.Secret, input.Password, now)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to validate class password: %s", err))
		return
	}
	if !isPasswordValid {
		countChallenge(ErrorInvalidPassword.Error())
		common.SendHttpFailResponse(w, r, http.StatusForbidden, "class password is wrong", ErrorInvalidPassword)
		return
	}

	token, claims, err := auth.GenerateChallengeJwt(auth.GenerateChallengeJwtOpts{
		ClassSessionId: classSession.Id,
		Id:             uuid.NewString(),
		Now:            now,
		Secret:         a.challengeSecret,
		StudentId:      studentId,
		Ttl:            a.challengeTtl,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to issue challenge: %s", err))
		return
	}
	if err := a.ledger.Issue(r.Context(), classSession.Id, studentId, claims.ID, a.challengeTtl); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to record challenge: %s", err))
		return
	}
	countChallenge(resultIssued)
	log(common.LogLevelInfo, fmt.Sprintf("issued challenge[%s] to student[%v] for class session[%v]", claims.ID, studentId, classSession.Id))

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", ChallengePayload{
		ClassSessionId: classSession.Id,
		StudentId:      studentId,
		IssuedAt:       claims.IssuedAt.Unix(),
		ExpiresAt:      claims.ExpiresAt.Unix(),
		Token:          token,
	})
}

// handleCheckinV1 redeems a scanned challenge. A presence that is
// already recorded is reported as such even when the challenge has
// since expired or been consumed
func (a *application) handleCheckinV1(w http.ResponseWriter, r *http.Request) {
	log := common.GetRequestLogger(r)
	identity, _ := getIdentity(r)
	teacherId := *identity.TeacherId

	var input ChallengePayload
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	if input.ClassSessionId <= 0 || input.StudentId <= 0 || input.Token == "" {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive id_aula, id_aluno and token", ErrorInvalidInput)
		return
	}
	claims, err := auth.ParseChallengeJwt(a.challengeSecret, input.Token)
	if err != nil {
		countCheckin(ErrorPayloadInvalid.Error())
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, fmt.Sprintf("failed to verify challenge: %s", err), ErrorPayloadInvalid)
		return
	}
	if claims.ClassSessionId != input.ClassSessionId || claims.StudentId != input.StudentId {
		countCheckin(ErrorPayloadInvalid.Error())
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "challenge does not match its envelope", ErrorPayloadInvalid)
		return
	}

	classSession := a.loadClassSession(w, r, claims.ClassSessionId)
	if classSession == nil {
		countCheckin(ErrorClassSessionNotFound.Error())
		return
	}
	if classSession.TeacherId != teacherId {
		countCheckin(ErrorNotClassTeacher.Error())
		common.SendHttpFailResponse(w, r, http.StatusForbidden, fmt.Sprintf("teacher[%v] does not teach class session[%v]", teacherId, classSession.Id), ErrorNotClassTeacher)
		return
	}
	result := CheckinResult{
		ClassSessionId: classSession.Id,
		StudentId:      claims.StudentId,
	}
	hasPresence, err := a.repository.HasPresence(r.Context(), classSession.Id, claims.StudentId)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to check presence: %s", err))
		return
	}
	if hasPresence {
		countCheckin(resultAlreadyMarked)
		result.AlreadyMarked = true
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "already marked", result)
		return
	}

	now := a.now()
	if !classSession.IsActiveAt(now) {
		countCheckin(ErrorClassSessionInactive.Error())
		common.SendHttpFailResponse(w, r, http.StatusConflict, fmt.Sprintf("class session[%v] is not taking place", classSession.Id), ErrorClassSessionInactive)
		return
	}
	if claims.IsExpiredAt(now) {
		countCheckin(ErrorPayloadExpired.Error())
		common.SendHttpFailResponse(w, r, http.StatusGone, fmt.Sprintf("challenge[%s] has expired", claims.ID), ErrorPayloadExpired)
		return
	}
	isEnrolled, err := a.repository.IsEnrolled(r.Context(), claims.StudentId, classSession.CourseUnitId)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to check enrolment: %s", err))
		return
	}
	if !isEnrolled {
		countCheckin(ErrorNotEnrolled.Error())
		common.SendHttpFailResponse(w, r, http.StatusForbidden, fmt.Sprintf("student[%v] is not enrolled in course unit[%v]", claims.StudentId, classSession.CourseUnitId), ErrorNotEnrolled)
		return
	}
	redeemResult, err := a.ledger.Redeem(r.Context(), classSession.Id, claims.StudentId, claims.ID)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to redeem challenge: %s", err))
		return
	}
	if redeemResult == RedeemRefused {
		countCheckin(ErrorPayloadSuperseded.Error())
		common.SendHttpFailResponse(w, r, http.StatusConflict, fmt.Sprintf("challenge[%s] is no longer the latest one", claims.ID), ErrorPayloadSuperseded)
		return
	}

	// a repeated redemption still goes through the insert, only the
	// presences table decides between recorded and already marked
	isInserted, err := a.repository.RecordPresence(r.Context(), models.Presence{
		ClassSessionId: classSession.Id,
		StudentId:      claims.StudentId,
		RecordedBy:     teacherId,
		RecordedAt:     now,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to record presence: %s", err))
		return
	}
	if !isInserted {
		countCheckin(resultAlreadyMarked)
		result.AlreadyMarked = true
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "already marked", result)
		return
	}
	countCheckin(resultRecorded)
	result.Recorded = true
	log(common.LogLevelInfo, fmt.Sprintf("recorded presence of student[%v] in class session[%v]", claims.StudentId, classSession.Id))
	if err := a.events.PresenceRecorded(PresenceRecordedEvent{
		ClassSessionId: classSession.Id,
		StudentId:      claims.StudentId,
		TeacherId:      teacherId,
		RecordedAt:     now,
	}); err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to publish presence: %s", err))
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "recorded", result)
}

func (a *application) handleGetClassPasswordV1(w http.ResponseWriter, r *http.Request) {
	identity, _ := getIdentity(r)
	classSessionId, err := strconv.ParseInt(mux.Vars(r)["classSessionId"], 10, 64)
	if err != nil || classSessionId <= 0 {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid class session id", ErrorInvalidInput)
		return
	}
	classSession := a.loadClassSession(w, r, classSessionId)
	if classSession == nil {
		return
	}
	if classSession.TeacherId != *identity.TeacherId {
		common.SendHttpFailResponse(w, r, http.StatusForbidden, fmt.Sprintf("teacher[%v] does not teach class session[%v]", *identity.TeacherId, classSession.Id), ErrorNotClassTeacher)
		return
	}
	now := a.now()
	if !classSession.IsActiveAt(now) {
		common.SendHttpFailResponse(w, r, http.StatusConflict, fmt.Sprintf("class session[%v] is not taking place", classSession.Id), ErrorClassSessionInactive)
		return
	}
	password, validUntil, err := auth.GenerateClassPassword(classSession.Secret, now)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to generate class password: %s", err))
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", ClassPassword{
		ClassSessionId: classSession.Id,
		Password:       password,
		ValidUntil:     validUntil,
	})
}
