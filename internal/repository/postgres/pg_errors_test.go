package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/boxoffice/internal/repository"
)

func TestTranslateDBErr(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{pgx.ErrNoRows, repository.ErrNotFound},
		{&pgconn.PgError{Code: "23505"}, repository.ErrConflict},
		{&pgconn.PgError{Code: "23503"}, repository.ErrNotFound},
	}
	for _, tc := range cases {
		if got := translateDBErr(fmt.Errorf("scan: %w", tc.in)); !errors.Is(got, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.in, tc.want, got)
		}
	}

	other := errors.New("boom")
	if got := translateDBErr(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if translateDBErr(nil) != nil {
		t.Fatal("expected nil for nil")
	}
}

func TestWrapDBErr(t *testing.T) {
	err := wrapDBErr("postgres.QueryRepo.GetVenue", pgx.ErrNoRows)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "postgres.QueryRepo.GetVenue:not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})) {
		t.Fatal("serialization failure must be retryable")
	}
	if !IsRetryable(&pgconn.PgError{Code: "40P01"}) {
		t.Fatal("deadlock must be retryable")
	}
	if IsRetryable(&pgconn.PgError{Code: "23505"}) || IsRetryable(errors.New("x")) {
		t.Fatal("only 40001 and 40P01 are retryable")
	}
}
