package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

var (
	errMissing = errors.New("record missing")
	errTaken   = errors.New("already taken")
	errLocked  = errors.New("locked")
)

func newMapper() *ErrorMapper {
	return NewErrorMapper(
		Rule{Status: fiber.StatusNotFound, Errs: []error{errMissing}},
		Rule{Status: fiber.StatusConflict, Message: "Try again", Errs: []error{errTaken, errLocked}},
	)
}

func TestErrorMapper_Status(t *testing.T) {
	m := newMapper()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantOK      bool
	}{
		{"exposes the error text", errMissing, fiber.StatusNotFound, "record missing", true},
		{"wrapped error", fmt.Errorf("question 7: %w", errMissing), fiber.StatusNotFound, "question 7: record missing", true},
		{"fixed message", errLocked, fiber.StatusConflict, "Try again", true},
		{"unmatched", errors.New("disk full"), 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message, ok := m.Status(tt.err)
			if status != tt.wantStatus || message != tt.wantMessage || ok != tt.wantOK {
				t.Errorf("Status = %d, %q, %v; want %d, %q, %v", status, message, ok, tt.wantStatus, tt.wantMessage, tt.wantOK)
			}
		})
	}
}

func TestErrorMapper_Send(t *testing.T) {
	m := newMapper()
	app := fiber.New()
	app.Get("/taken", func(c *fiber.Ctx) error { return m.Send(c, errTaken, "unused") })
	app.Get("/broken", func(c *fiber.Ctx) error { return m.Send(c, errors.New("disk full"), "Failed to save") })

	tests := []struct {
		path       string
		wantStatus int
		wantError  string
	}{
		{"/taken", fiber.StatusConflict, "Try again"},
		{"/broken", fiber.StatusInternalServerError, "Failed to save"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			var env Response
			if err := json.Unmarshal(body, &env); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if resp.StatusCode != tt.wantStatus || env.Success || env.Error != tt.wantError {
				t.Errorf("got %d %+v, want %d %q", resp.StatusCode, env, tt.wantStatus, tt.wantError)
			}
		})
	}
}
