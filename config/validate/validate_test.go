package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidationErrors(t *testing.T) {
	var v ValidationErrors
	RequireString(&v, "server/addr", ":8080")
	RequireSecret(&v, "auth/jwt/secret", " ")
	RequireMin(&v, "probe/workers", 0, 1)
	RequireRange(&v, "database/port", 70000, 1, 65535)
	CheckDuration(&v, "server/timeouts/idle", 0)
	CheckDuration(&v, "server/timeouts/read", time.Second)

	var got []string
	for _, err := range v.Errors() {
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("%T is not a FieldError", err)
		}
		got = append(got, fe.Path)
	}
	want := []string{"auth/jwt/secret", "probe/workers", "database/port", "server/timeouts/idle"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rejected paths (-want +got):\n%s", diff)
	}

	var secret *FieldError
	errors.As(v.Errors()[0], &secret)
	if secret.Value != masked {
		t.Errorf("secret value kept as %v", secret.Value)
	}
	if !strings.Contains(v.Error(), "database/port: must be between 1 and 65535") {
		t.Errorf("message lacks the port reason:\n%s", v.Error())
	}

	var fe *FieldError
	if !errors.As(&v, &fe) || fe.Path != "auth/jwt/secret" {
		t.Errorf("errors.As through ValidationErrors = %+v", fe)
	}
}

func TestNoErrors(t *testing.T) {
	var v ValidationErrors
	RequireMin(&v, "frames[0]/reference_width", 1440.0, 0)
	if v.HasErrors() {
		t.Errorf("unexpected errors: %v", v.Error())
	}
}
