package validator

import (
	"testing"
)

type sample struct {
	Email      string  `json:"email" validate:"required,email"`
	Username   string  `json:"username" validate:"required,max=5"`
	Kind       string  `json:"kind" validate:"oneof=a b"`
	Birth      *string `json:"birth" validate:"omitempty,date"`
	Experience string  `json:"experience" validate:"omitempty,integer,nonnegative"`
}

func strPtr(s string) *string { return &s }

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{
		Email:      "not-an-email",
		Username:   "toolongname",
		Kind:       "c",
		Birth:      strPtr("01/02/2000"),
		Experience: "-3",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := v.FormatValidationErrors(err)

	want := map[string]string{
		"email":      "Enter a valid email address.",
		"username":   "Ensure this field has no more than 5 characters.",
		"kind":       `"c" is not a valid choice.`,
		"birth":      "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.",
		"experience": "Ensure this value is greater than or equal to 0.",
	}
	for field, msg := range want {
		msgs := got[field]
		if len(msgs) != 1 || msgs[0] != msg {
			t.Errorf("%s: got %v, want [%s]", field, msgs, msg)
		}
	}
}

func TestRequiredAndInteger(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Kind: "a", Experience: "five"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := v.FormatValidationErrors(err)
	for _, field := range []string{"email", "username"} {
		if msgs := got[field]; len(msgs) != 1 || msgs[0] != "This field is required." {
			t.Errorf("%s: got %v, want required message", field, msgs)
		}
	}
	if msgs := got["experience"]; len(msgs) != 1 || msgs[0] != "A valid integer is required." {
		t.Errorf("experience: got %v", msgs)
	}
}

func TestValidStruct(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{
		Email:      "jane@example.com",
		Username:   "jane",
		Kind:       "b",
		Birth:      strPtr("1990-05-01"),
		Experience: "7",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", v.FormatValidationErrors(err))
	}
}

func TestIntegerRange(t *testing.T) {
	type years struct {
		Raw   string `json:"raw" validate:"omitempty,integer,nonnegative"`
		Count *int   `json:"count" validate:"omitempty,integer,gte=0"`
	}

	v := NewValidator()
	big := 3000000000
	ok := 2147483647

	tests := []struct {
		name      string
		input     years
		wantField string
	}{
		{"string above int32", years{Raw: "3000000000"}, "raw"},
		{"string below int32", years{Raw: "-3000000000"}, "raw"},
		{"int above int32", years{Count: &big}, "count"},
		{"int32 max", years{Raw: "2147483647", Count: &ok}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", v.FormatValidationErrors(err))
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			msgs := v.FormatValidationErrors(err)[tt.wantField]
			if len(msgs) != 1 || msgs[0] != "A valid integer is required." {
				t.Errorf("%s: got %v", tt.wantField, msgs)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	type name struct {
		First string `json:"first_name" validate:"required,notblank,max=30"`
	}

	v := NewValidator()
	err := v.Validate(&name{First: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if msgs := v.FormatValidationErrors(err)["first_name"]; len(msgs) != 1 || msgs[0] != "This field may not be blank." {
		t.Errorf("first_name: got %v", msgs)
	}
}
