package auth

import "testing"

func TestIsEmailValid(t *testing.T) {
	valid := []string{"ana.silva@alunos.uni.pt", "rui_costa@uni.edu", "docente-1@escola.pt"}
	for _, email := range valid {
		if ok, err := IsEmailValid(email); !ok {
			t.Errorf("expected %s to be valid: %s", email, err)
		}
	}
	invalid := []string{"", "ana", "ana@@uni.pt", "@uni.pt", "ana@uni", "ana silva@uni.pt"}
	for _, email := range invalid {
		if ok, _ := IsEmailValid(email); ok {
			t.Errorf("expected %s to be invalid", email)
		}
	}
}
