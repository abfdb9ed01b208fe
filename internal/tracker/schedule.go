package tracker

import (
	"fmt"
	"net/http"
	"time"

	"rollcall/internal/common"
)

// dayBounds returns the start of the day `now` falls on and the start
// of the next one, in `now`'s location
func dayBounds(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func (a *application) handleGetStudentTodayV1(w http.ResponseWriter, r *http.Request) {
	identity, _ := getIdentity(r)
	from, to := dayBounds(a.now())
	classSessions, err := a.repository.ListStudentClassSessions(r.Context(), *identity.StudentId, from, to)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list class sessions: %s", err))
		return
	}
	output := StudentToday{
		StudentId:     *identity.StudentId,
		ClassSessions: []ClassSession{},
	}
	for _, classSession := range classSessions {
		item := newClassSession(classSession)
		marked := classSession.Marked
		item.Marked = &marked
		output.ClassSessions = append(output.ClassSessions, item)
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", output)
}

func (a *application) handleGetTeacherTodayV1(w http.ResponseWriter, r *http.Request) {
	identity, _ := getIdentity(r)
	from, to := dayBounds(a.now())
	classSessions, err := a.repository.ListTeacherClassSessions(r.Context(), *identity.TeacherId, from, to)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list class sessions: %s", err))
		return
	}
	output := TeacherToday{
		TeacherId:     *identity.TeacherId,
		ClassSessions: []ClassSession{},
	}
	for _, classSession := range classSessions {
		item := newClassSession(classSession)
		presences := classSession.Presences
		item.Presences = &presences
		output.ClassSessions = append(output.ClassSessions, item)
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", output)
}

func (a *application) handleListCourseUnitsV1(w http.ResponseWriter, r *http.Request) {
	courseUnits, err := a.repository.ListCourseUnits(r.Context())
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list course units: %s", err))
		return
	}
	output := []CourseUnit{}
	for _, courseUnit := range courseUnits {
		output = append(output, CourseUnit{
			CourseUnitId:   courseUnit.Id,
			CourseUnitName: courseUnit.Name,
			Description:    courseUnit.Description,
			CourseName:     courseUnit.CourseName,
		})
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", output)
}
