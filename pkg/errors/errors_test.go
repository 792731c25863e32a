package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("song", "red_dirt_road")

	if err.Error() != "song red_dirt_road not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound) to be true")
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if IsConflict(err) {
		t.Error("expected IsConflict to be false")
	}
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{
		Path:    "catalog.json",
		SHA:     "abc123",
		Message: "catalog.json does not match abc123",
	}

	if !errors.Is(err, ErrRemoteConflict) {
		t.Error("expected errors.Is(err, ErrRemoteConflict) to be true")
	}
	if !IsConflict(err) {
		t.Error("expected IsConflict to be true")
	}
	if IsNotFound(err) {
		t.Error("expected IsNotFound to be false")
	}
}

func TestRemoteError(t *testing.T) {
	upstream := errors.New("connection refused")
	err := &RemoteError{
		Operation: "put",
		Path:      "songs/red_dirt_road.json",
		Message:   "connection refused",
		Err:       upstream,
	}

	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Error("expected errors.Is(err, ErrRemoteUnavailable) to be true")
	}
	if !errors.Is(err, upstream) {
		t.Error("expected unwrap to reach the upstream error")
	}

	withStatus := NewRemoteError("put", "catalog.json", 403, "rate limit exceeded")
	want := "remote put of catalog.json failed (status 403): rate limit exceeded"
	if withStatus.Error() != want {
		t.Errorf("unexpected message: %s", withStatus.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "", "title is required")

	if !IsValidationError(err) {
		t.Error("expected IsValidationError to be true")
	}
	if err.Error() != "validation failed for field title: title is required" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapIO("read", "x", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if WrapResource("fetch", "song", "x", nil) != nil {
		t.Error("WrapResource(nil) should be nil")
	}
	if WrapParse("json", "catalog.json", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}

	base := errors.New("boom")
	wrapped := WrapResource("fetch", "song", "red_dirt_road", base)
	if !errors.Is(wrapped, base) {
		t.Error("expected wrapped error to unwrap to base")
	}

	var resErr *ResourceError
	if !errors.As(wrapped, &resErr) {
		t.Fatal("expected a *ResourceError")
	}
	if resErr.Resource != "song" || resErr.ID != "red_dirt_road" {
		t.Errorf("unexpected resource error fields: %+v", resErr)
	}
}

func TestWrappedChainPreservesSentinel(t *testing.T) {
	inner := &NotFoundError{Resource: "theme", ID: "bar_setting"}
	outer := fmt.Errorf("loading snapshot: %w", inner)

	if !IsNotFound(outer) {
		t.Error("expected sentinel to survive fmt.Errorf wrapping")
	}
}
