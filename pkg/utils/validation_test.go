package utils

import (
	"strings"
	"testing"
	"time"
)

func TestUsernameError(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"plain", "bob", false},
		{"allowed punctuation", "bob.smith@home+1-x_y", false},
		{"unicode letters", "пользователь", false},
		{"digits", "user42", false},
		{"reserved me", "me", true},
		{"space", "bob smith", true},
		{"slash", "bob/smith", true},
		{"hash", "#bob", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UsernameError(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("UsernameError(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestUsernameError_ListsForbiddenCharacters(t *testing.T) {
	err := UsernameError("a b!b")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasSuffix(err.Error(), " !") {
		t.Errorf("error = %q, want the forbidden characters listed", err)
	}
}

func TestTitleYearError(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"current year", year, false},
		{"last year", year - 1, false},
		{"ancient", -500, false},
		{"next year", year + 1, true},
		{"far future", year + 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := TitleYearError(tt.year); (err != nil) != tt.wantErr {
				t.Errorf("TitleYearError(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
			}
		})
	}
}

type validatedPayload struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Slug     string `json:"slug" validate:"required,max=50,slug"`
	Year     *int   `json:"year,omitempty" validate:"omitempty,notfuture"`
}

func TestValidateStruct_DomainTags(t *testing.T) {
	future := time.Now().Year() + 1
	past := 1999

	valid := validatedPayload{Username: "bob", Slug: "sci-fi_2", Year: &past}
	if errs := ValidateStruct(valid); errs != nil {
		t.Fatalf("ValidateStruct(valid) = %v, want nil", errs)
	}

	invalid := validatedPayload{Username: "me", Slug: "sci fi", Year: &future}
	errs := ValidateStruct(invalid)
	for _, field := range []string{"username", "slug", "year"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected an error for %q, got %v", field, errs)
		}
	}
}

func TestGenerateConfirmationCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateConfirmationCode()
		if err != nil {
			t.Fatalf("GenerateConfirmationCode() error = %v", err)
		}
		if code == SpentConfirmationCode {
			t.Fatal("generated the spent sentinel")
		}
		if len(code) != 6 {
			t.Fatalf("code %q should have 6 digits", code)
		}
		n := ParseInt(code, -1)
		if n < ConfirmationCodeMin || n >= ConfirmationCodeMax {
			t.Fatalf("code %q out of range", code)
		}
	}
}
