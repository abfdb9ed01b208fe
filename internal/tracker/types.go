package tracker

import (
	"time"

	"rollcall/internal/tracker/models"
)

type LoginV1Output struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChallengePayload is what a student renders as a QR code and what a
// teacher submits back after scanning it
type ChallengePayload struct {
	ClassSessionId int64  `json:"id_aula"`
	StudentId      int64  `json:"id_aluno"`
	IssuedAt       int64  `json:"iat"`
	ExpiresAt      int64  `json:"exp"`
	Token          string `json:"token"`
}

type CreateChallengeV1Input struct {
	ClassSessionId int64  `json:"id_aula"`
	Password       string `json:"password"`
}

type CheckinResult struct {
	ClassSessionId int64 `json:"id_aula"`
	StudentId      int64 `json:"id_aluno"`
	Recorded       bool  `json:"recorded"`
	AlreadyMarked  bool  `json:"alreadyMarked"`
}

type ClassPassword struct {
	ClassSessionId int64     `json:"id_aula"`
	Password       string    `json:"password"`
	ValidUntil     time.Time `json:"validUntil"`
}

type ClassSession struct {
	ClassSessionId int64     `json:"id_aula"`
	CourseUnitId   int64     `json:"id_uc"`
	CourseUnitName string    `json:"nome_uc"`
	CourseName     string    `json:"nome_curso"`
	Room           string    `json:"sala"`
	Summary        string    `json:"resumo"`
	StartsAt       time.Time `json:"inicio"`
	EndsAt         time.Time `json:"fim"`
	Presences      *int      `json:"presencas,omitempty"`
	Marked         *bool     `json:"marcada,omitempty"`
}

func newClassSession(classSession models.ClassSession) ClassSession {
	return ClassSession{
		ClassSessionId: classSession.Id,
		CourseUnitId:   classSession.CourseUnitId,
		CourseUnitName: classSession.CourseUnitName,
		CourseName:     classSession.CourseName,
		Room:           classSession.Room,
		Summary:        classSession.Summary,
		StartsAt:       classSession.StartsAt,
		EndsAt:         classSession.EndsAt,
	}
}

type StudentToday struct {
	StudentId     int64          `json:"id_aluno"`
	ClassSessions []ClassSession `json:"aulas"`
}

type TeacherToday struct {
	TeacherId     int64          `json:"id_docente"`
	ClassSessions []ClassSession `json:"aulas"`
}

type CourseUnit struct {
	CourseUnitId   int64  `json:"id_uc"`
	CourseUnitName string `json:"nome_uc"`
	Description    string `json:"descricao"`
	CourseName     string `json:"nome_curso"`
}
