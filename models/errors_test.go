package models

import (
	"fmt"
	"net/http"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"wrapped validation", fmt.Errorf("%w: bad days", ErrValidation), KindValidation},
		{"wrapped not found", fmt.Errorf("%w: %q", ErrPlayerNotFound, "Nobody"), KindPlayerNotFound},
		{"insufficient data", ErrInsufficientData, KindInsufficientData},
		{"quota", fmt.Errorf("%w: status 429", ErrQuotaExceeded), KindQuotaExceeded},
		{"source down", fmt.Errorf("%w: timeout", ErrSourceUnavailable), KindSourceUnavailable},
		{"unauthorized", ErrUnauthorized, KindUnauthorized},
		{"unknown error", fmt.Errorf("something broke"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindPlayerNotFound, http.StatusNotFound},
		{KindInsufficientData, http.StatusUnprocessableEntity},
		{KindQuotaExceeded, http.StatusTooManyRequests},
		{KindSourceUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
