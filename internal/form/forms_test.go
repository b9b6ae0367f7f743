package form

import (
	"reflect"
	"testing"
)

func TestLoginValidate(t *testing.T) {
	v := Login{}.Validate()
	want := []string{"email can't be blank", "password can't be blank"}
	if got := v.Problems(); !reflect.DeepEqual(got, want) {
		t.Errorf("Problems() = %v, want %v", got, want)
	}

	if v := (Login{Email: "jake@example.com", Password: "password123"}).Validate(); !v.IsValid() {
		t.Errorf("valid login rejected: %v", v.Problems())
	}
}

func TestRegisterValidate(t *testing.T) {
	tests := []struct {
		name string
		form Register
		want []string
	}{
		{
			name: "all blank",
			form: Register{},
			want: []string{
				"username can't be blank",
				"email can't be blank",
				"password can't be blank, is too short (minimum is 8 characters)",
			},
		},
		{
			name: "bad email",
			form: Register{Username: "jake", Email: "not-an-email", Password: "password123"},
			want: []string{"email is invalid"},
		},
		{
			name: "short password",
			form: Register{Username: "jake", Email: "jake@example.com", Password: "short"},
			want: []string{"password is too short (minimum is 8 characters)"},
		},
		{
			name: "valid",
			form: Register{Username: "jake", Email: "jake@example.com", Password: "password123"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.Validate().Problems(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Problems() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	v := Settings{Username: "jake", Email: "jake@example.com"}.Validate()
	if !v.IsValid() {
		t.Errorf("valid settings rejected: %v", v.Problems())
	}

	v = Settings{Email: "bogus"}.Validate()
	want := []string{"username can't be blank", "email is invalid"}
	if got := v.Problems(); !reflect.DeepEqual(got, want) {
		t.Errorf("Problems() = %v, want %v", got, want)
	}
}

func TestArticleValidate(t *testing.T) {
	v := Article{Title: "t", Description: "d", Body: "b"}.Validate()
	if !v.IsValid() {
		t.Errorf("valid article rejected: %v", v.Problems())
	}

	v = Article{Title: "t"}.Validate()
	want := []string{"description can't be blank", "body can't be blank"}
	if got := v.Problems(); !reflect.DeepEqual(got, want) {
		t.Errorf("Problems() = %v, want %v", got, want)
	}
}

func TestCommentValidate(t *testing.T) {
	if v := (Comment{Body: "  "}).Validate(); v.IsValid() {
		t.Error("blank comment passed validation")
	}
	if v := (Comment{Body: "Nice post."}).Validate(); !v.IsValid() {
		t.Errorf("valid comment rejected: %v", v.Problems())
	}
}
