package session

import "strings"

// Roles are capability hints derived from the token, the tracker
// re-checks them on every call
type Roles struct {
	Student   bool `json:"student" yaml:"student"`
	Teacher   bool `json:"teacher" yaml:"teacher"`
	Superuser bool `json:"superuser" yaml:"superuser"`
}

func DeriveRoles(s *Session) Roles {
	if s == nil {
		return Roles{}
	}
	return Roles{
		Student:   s.Claims.IsStudent,
		Teacher:   s.Claims.IsTeacher,
		Superuser: s.Claims.IsSuper,
	}
}

func (r Roles) String() string {
	names := []string{}
	if r.Student {
		names = append(names, "student")
	}
	if r.Teacher {
		names = append(names, "teacher")
	}
	if r.Superuser {
		names = append(names, "superuser")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
