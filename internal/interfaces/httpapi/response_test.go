package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/fplhq/companion/internal/usecase"
)

func TestWriteError_MapsSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad id", usecase.ErrInvalidInput), 400, "invalidInput"},
		{"not found", fmt.Errorf("%w: no entry", usecase.ErrNotFound), 404, "notFound"},
		{"service updating", fmt.Errorf("%w: recalculating", usecase.ErrServiceUpdating), 503, "serviceUpdating"},
		{"dependency unavailable", fmt.Errorf("%w: breaker open", usecase.ErrDependencyUnavailable), 503, "dependencyUnavailable"},
		{"unknown", errors.New("boom"), 500, "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}

			var envelope googleResponseEnvelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if envelope.APIVersion != googleAPIVersion {
				t.Fatalf("apiVersion: got=%q", envelope.APIVersion)
			}
			if envelope.Error == nil || len(envelope.Error.Errors) != 1 {
				t.Fatalf("error body missing: %+v", envelope)
			}
			if got := envelope.Error.Errors[0].Reason; got != tc.wantReason {
				t.Fatalf("reason: got=%q want=%q", got, tc.wantReason)
			}
		})
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, 200, map[string]string{"status": "ok"})

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type: got=%q", got)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != "2.0" || envelope.Data["status"] != "ok" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}
