package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ChallengePayload is an attendance challenge as issued to a student.
// Clients treat it as opaque, Token is only meaningful to the tracker
type ChallengePayload struct {
	ClassSessionId int64  `json:"id_aula" yaml:"id_aula"`
	StudentId      int64  `json:"id_aluno" yaml:"id_aluno"`
	IssuedAt       int64  `json:"iat" yaml:"iat"`
	ExpiresAt      int64  `json:"exp" yaml:"exp"`
	Token          string `json:"token" yaml:"token"`
}

var errorPayloadShape = errors.New("payload_shape_invalid")

// ParseChallengePayload decodes a payload from its JSON form and checks
// that every field is present
func ParseChallengePayload(data []byte) (*ChallengePayload, error) {
	var payload ChallengePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errorPayloadShape, err)
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Validate checks the envelope shape, not the token
func (p ChallengePayload) Validate() error {
	switch {
	case p.ClassSessionId <= 0:
		return fmt.Errorf("%w: missing id_aula", errorPayloadShape)
	case p.StudentId <= 0:
		return fmt.Errorf("%w: missing id_aluno", errorPayloadShape)
	case p.IssuedAt <= 0 || p.ExpiresAt <= 0:
		return fmt.Errorf("%w: missing iat or exp", errorPayloadShape)
	case p.ExpiresAt < p.IssuedAt:
		return fmt.Errorf("%w: exp precedes iat", errorPayloadShape)
	case p.Token == "":
		return fmt.Errorf("%w: missing token", errorPayloadShape)
	}
	return nil
}

func (p ChallengePayload) ExpiresAtTime() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

// CheckinResult is the outcome of redeeming a ChallengePayload. A
// payload for a presence that is already recorded is reported with
// AlreadyMarked rather than as an error
type CheckinResult struct {
	ClassSessionId int64 `json:"id_aula" yaml:"id_aula"`
	StudentId      int64 `json:"id_aluno" yaml:"id_aluno"`
	Recorded       bool  `json:"recorded" yaml:"recorded"`
	AlreadyMarked  bool  `json:"alreadyMarked" yaml:"alreadyMarked"`
}

type ClassPassword struct {
	ClassSessionId int64     `json:"id_aula" yaml:"id_aula"`
	Password       string    `json:"password" yaml:"password"`
	ValidUntil     time.Time `json:"validUntil" yaml:"validUntil"`
}

type ClassSession struct {
	ClassSessionId int64     `json:"id_aula" yaml:"id_aula"`
	CourseUnitId   int64     `json:"id_uc" yaml:"id_uc"`
	CourseUnitName string    `json:"nome_uc" yaml:"nome_uc"`
	CourseName     string    `json:"nome_curso" yaml:"nome_curso"`
	Room           string    `json:"sala" yaml:"sala"`
	Summary        string    `json:"resumo" yaml:"resumo"`
	StartsAt       time.Time `json:"inicio" yaml:"inicio"`
	EndsAt         time.Time `json:"fim" yaml:"fim"`

	// Presences is only reported to teachers
	Presences *int `json:"presencas,omitempty" yaml:"presencas,omitempty"`

	// Marked is only reported to students
	Marked *bool `json:"marcada,omitempty" yaml:"marcada,omitempty"`
}

// IsActiveAt reports whether the class session accepts check-ins at `t`
func (c ClassSession) IsActiveAt(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.EndsAt)
}

type StudentToday struct {
	StudentId     int64          `json:"id_aluno" yaml:"id_aluno"`
	ClassSessions []ClassSession `json:"aulas" yaml:"aulas"`
}

type TeacherToday struct {
	TeacherId     int64          `json:"id_docente" yaml:"id_docente"`
	ClassSessions []ClassSession `json:"aulas" yaml:"aulas"`
}

type CourseUnit struct {
	CourseUnitId   int64  `json:"id_uc" yaml:"id_uc"`
	CourseUnitName string `json:"nome_uc" yaml:"nome_uc"`
	Description    string `json:"descricao" yaml:"descricao"`
	CourseName     string `json:"nome_curso" yaml:"nome_curso"`
}
