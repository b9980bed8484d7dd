package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := TranslationTypeUUID("TranslatableNews")
	second := TranslationTypeUUID(" TranslatableNews ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
}

func TestUUIDSeparatesKinds(t *testing.T) {
	if TranslationTypeUUID("News") == UUID("News") {
		t.Fatal("expected the type prefix to produce a different identifier")
	}
	if TranslationTypeUUID("TranslatableNews") == TranslationTypeUUID("TranslatablePage") {
		t.Fatal("expected different names to produce different identifiers")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("  "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key, got %s", got)
	}
}
