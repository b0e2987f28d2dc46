package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindGone, http.StatusGone},
		{KindUnknown, http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(kind %d) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("prospect not found")
	if err.Error() != "prospect not found" {
		t.Errorf("Error() = %q", err.Error())
	}

	withOp := NotFound("prospect not found").WithOp("scoring.Snapshot")
	if withOp.Error() != "scoring.Snapshot: prospect not found" {
		t.Errorf("Error() = %q, want the op prefix", withOp.Error())
	}
}

func TestKindInspection(t *testing.T) {
	err := Validation("bad version")
	if !Is(err, KindValidation) {
		t.Error("Is should match the error's kind")
	}
	if Is(err, KindNotFound) {
		t.Error("Is must not match other kinds")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors read as unknown")
	}
	if Is(nil, KindValidation) {
		t.Error("nil is no kind at all")
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(KindInternal, "snapshot query failed", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped errors must unwrap to the cause")
	}
}
