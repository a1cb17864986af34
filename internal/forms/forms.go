// Package forms defines one typed input struct per HTML form, parsed from the
// request and validated explicitly. A Validate call returns user-visible
// messages; an empty slice means the input is acceptable.
package forms

import (
	"mime/multipart"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength = 100
	// bcrypt only hashes the first 72 bytes and errors on longer input
	MaxPasswordBytes = 72
	maxUploadBytes   = 16 << 20
)

type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func ParseRegister(r *http.Request) RegisterForm {
	return RegisterForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

func (f RegisterForm) Validate() []string {
	var errs []string
	if f.Username == "" {
		errs = append(errs, "Username is required.")
	}
	if f.Email == "" {
		errs = append(errs, "Email is required.")
	} else if !validEmail(f.Email) {
		errs = append(errs, "Email address is not valid.")
	}
	if f.Password == "" {
		errs = append(errs, "Password is required.")
	} else if len(f.Password) > MaxPasswordBytes {
		errs = append(errs, "Password is too long.")
	}
	if f.Password != f.ConfirmPassword {
		errs = append(errs, "Passwords do not match.")
	}
	return errs
}

type LoginForm struct {
	Username string
	Password string
}

func ParseLogin(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
}

func (f LoginForm) Validate() []string {
	var errs []string
	if f.Username == "" {
		errs = append(errs, "Username is required.")
	}
	if f.Password == "" {
		errs = append(errs, "Password is required.")
	}
	return errs
}

type BlogForm struct {
	Title   string
	Content string
	Image   *multipart.FileHeader // nil when no file was attached
}

// ParseBlog reads the blog create/edit form. The form may arrive urlencoded
// (no file input) or multipart.
func ParseBlog(r *http.Request) BlogForm {
	f := BlogForm{}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		r.ParseForm()
	}
	f.Title = strings.TrimSpace(r.FormValue("title"))
	f.Content = r.FormValue("content")
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File["image"]; len(headers) > 0 {
			f.Image = headers[0]
		}
	}
	return f
}

func (f BlogForm) Validate(allowedExts map[string]bool) []string {
	var errs []string
	if f.Title == "" {
		errs = append(errs, "Title is required.")
	} else if utf8.RuneCountInString(f.Title) > MaxTitleLength {
		errs = append(errs, "Title must be at most 100 characters.")
	}
	if f.Content == "" {
		errs = append(errs, "Content is required.")
	}
	if f.Image != nil && !AllowedImage(f.Image.Filename, allowedExts) {
		errs = append(errs, "Image must be a png, jpg, jpeg or gif file.")
	}
	return errs
}

// AllowedImage reports whether the filename carries an allow-listed extension.
func AllowedImage(filename string, allowedExts map[string]bool) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	return allowedExts[strings.ToLower(filename[i+1:])]
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
