package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeValidation:       http.StatusBadRequest,
		CodeQuantityRange:    http.StatusBadRequest,
		CodeEmptyOrder:       http.StatusBadRequest,
		CodeOrderLimit:       http.StatusUnprocessableEntity,
		CodeStockUnavailable: http.StatusConflict,
		CodeGateway:          http.StatusBadGateway,
		CodeCancelled:        499,
		CodeDependency:       http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Fatalf("status for %s: got %d, want %d", code, got, want)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("boom")
	err := Wrap(CodeGateway, cause, "create payment intent")

	if err.Unwrap() != cause {
		t.Fatal("expected wrapped cause")
	}
	if err.Code() != CodeGateway {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if !HasCode(err, CodeGateway) {
		t.Fatal("HasCode should find the gateway code")
	}
	if HasCode(err, CodeEmptyOrder) {
		t.Fatal("HasCode matched the wrong code")
	}
}

func TestAsThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := New(CodeOrderLimit, "total above ceiling").WithDetails(map[string]any{"limit_cents": 100000})
	outer := fmt.Errorf("submit: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeOrderLimit {
		t.Fatalf("expected typed order-limit error, got %v", typed)
	}
	if typed.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeDependency, fmt.Errorf("low level"), "persist order")
	dump := Dump(err)

	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
