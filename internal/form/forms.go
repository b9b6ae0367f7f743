// Package form holds the payloads the user fills in before a create or
// update request, together with their client-side validation. Each form
// doubles as the wire shape sent under the resource-named root key, so
// the request operations can marshal it directly.
package form

import (
	"strings"

	"conduit-tui/internal/validator"
)

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f Login) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Email, "email", "can't be blank")
	v.CheckNotBlank(f.Password, "password", "can't be blank")
	return v
}

type Register struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f Register) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Username, "username", "can't be blank")
	v.CheckNotBlank(f.Email, "email", "can't be blank")
	if strings.TrimSpace(f.Email) != "" {
		v.CheckEmail(f.Email, "is invalid")
	}
	v.CheckNotBlank(f.Password, "password", "can't be blank")
	v.Check(len(f.Password) >= 8, "password", "is too short (minimum is 8 characters)")
	return v
}

type Settings struct {
	Image    string `json:"image"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (f Settings) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Username, "username", "can't be blank")
	v.CheckNotBlank(f.Email, "email", "can't be blank")
	if strings.TrimSpace(f.Email) != "" {
		v.CheckEmail(f.Email, "is invalid")
	}
	return v
}

type Article struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

func (f Article) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Title, "title", "can't be blank")
	v.CheckNotBlank(f.Description, "description", "can't be blank")
	v.CheckNotBlank(f.Body, "body", "can't be blank")
	return v
}

type Comment struct {
	Body string `json:"body"`
}

func (f Comment) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Body, "body", "can't be blank")
	return v
}
