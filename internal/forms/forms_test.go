package forms

import (
	"mime/multipart"
	"strings"
	"testing"
)

var allowedExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

func TestRegisterValidate(t *testing.T) {
	tests := []struct {
		name string
		form RegisterForm
		want int
	}{
		{"valid", RegisterForm{"alice", "alice@example.com", "secret", "secret"}, 0},
		{"all missing", RegisterForm{}, 3},
		{"bad email", RegisterForm{"alice", "not-an-email", "secret", "secret"}, 1},
		{"mismatch", RegisterForm{"alice", "alice@example.com", "secret", "other"}, 1},
		{"overlong password", RegisterForm{"alice", "alice@example.com",
			strings.Repeat("p", MaxPasswordBytes+1), strings.Repeat("p", MaxPasswordBytes+1)}, 1},
		{"max-length password", RegisterForm{"alice", "alice@example.com",
			strings.Repeat("p", MaxPasswordBytes), strings.Repeat("p", MaxPasswordBytes)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := tt.form.Validate(); len(errs) != tt.want {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, tt.want)
			}
		})
	}
}

func TestLoginValidate(t *testing.T) {
	if errs := (LoginForm{"alice", "secret"}).Validate(); len(errs) != 0 {
		t.Fatalf("valid form got errors: %v", errs)
	}
	if errs := (LoginForm{}).Validate(); len(errs) != 2 {
		t.Fatalf("empty form got %d errors, want 2", len(errs))
	}
}

func TestBlogValidate(t *testing.T) {
	if errs := (BlogForm{Title: "Hello", Content: "World"}).Validate(allowedExts); len(errs) != 0 {
		t.Fatalf("valid form got errors: %v", errs)
	}
	if errs := (BlogForm{}).Validate(allowedExts); len(errs) != 2 {
		t.Fatalf("empty form got %d errors, want 2", len(errs))
	}
	long := BlogForm{Title: strings.Repeat("x", MaxTitleLength+1), Content: "c"}
	if errs := long.Validate(allowedExts); len(errs) != 1 {
		t.Fatalf("overlong title got %d errors, want 1", len(errs))
	}
	// the bound counts characters, not bytes
	multibyte := BlogForm{Title: strings.Repeat("é", MaxTitleLength), Content: "c"}
	if errs := multibyte.Validate(allowedExts); len(errs) != 0 {
		t.Fatalf("100-rune title got errors: %v", errs)
	}
	if errs := (BlogForm{Title: strings.Repeat("é", MaxTitleLength+1), Content: "c"}).Validate(allowedExts); len(errs) != 1 {
		t.Fatalf("101-rune title got no error")
	}
	exe := BlogForm{Title: "t", Content: "c", Image: &multipart.FileHeader{Filename: "photo.exe"}}
	if errs := exe.Validate(allowedExts); len(errs) != 1 {
		t.Fatalf("exe upload got %d errors, want 1", len(errs))
	}
	png := BlogForm{Title: "t", Content: "c", Image: &multipart.FileHeader{Filename: "photo.png"}}
	if errs := png.Validate(allowedExts); len(errs) != 0 {
		t.Fatalf("png upload got errors: %v", errs)
	}
}

func TestAllowedImage(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"animation.gif", true},
		{"photo.exe", false},
		{"noextension", false},
		{"archive.tar.gz", false},
	}
	for _, tt := range tests {
		if got := AllowedImage(tt.name, allowedExts); got != tt.ok {
			t.Errorf("AllowedImage(%q) = %v, want %v", tt.name, got, tt.ok)
		}
	}
}
