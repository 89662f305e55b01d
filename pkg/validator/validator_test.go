package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	Title  string `json:"title" validate:"required"`
	TMDBID int    `json:"tmdb_id" validate:"required,gt=0"`
	Kind   string `json:"media_kind" validate:"required,media_kind"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		Title:  "Fight Club",
		TMDBID: 550,
		Kind:   "movie",
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		Title:  "",
		TMDBID: 0,
		Kind:   "book",
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundKind := false
	for _, v := range vErrs {
		if v.Field == "media_kind" && v.Tag == "media_kind" {
			foundKind = true
		}
	}

	if !foundKind {
		t.Fatal("expected media_kind failure to be present in validation errors")
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("cinebase", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "cinebase"
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Value string `validate:"cinebase"`
	}

	if err := ValidateStruct(custom{Value: "cinebase"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Value: "other"}); err == nil {
		t.Fatal("expected validation to fail for non-matching value")
	}
}
