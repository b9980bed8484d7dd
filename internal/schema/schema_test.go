package schema

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func newsDeclaration() *Declaration {
	return Declare("News").
		Property("title", String, Required(), MaxLength(40)).
		Property("content", Text)
}

func TestFinalizeAppliesDefaults(t *testing.T) {
	reg := NewRegistry()
	def, err := newsDeclaration().Finalize(reg)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if def.Type == nil || def.Type.Name != "TranslatableNews" {
		t.Fatalf("expected default translation model, got %+v", def.Type)
	}
	if def.OriginField() != "origin_id" || def.LocaleKey != "locale" {
		t.Fatalf("unexpected keys: %s %s", def.OriginField(), def.LocaleKey)
	}
	if got := def.PropertyNames(); len(got) != 2 || got[0] != "title" || got[1] != "content" {
		t.Fatalf("unexpected property names %v", got)
	}
	if _, ok := reg.Definition("News"); !ok {
		t.Fatal("expected definition to be stored")
	}
	if _, err := reg.Lookup("TranslatableNews"); err != nil {
		t.Fatalf("expected default model registered: %v", err)
	}
}

func TestFinalizeResolvesNamedModelOnce(t *testing.T) {
	reg := NewRegistry()
	handle, err := reg.Register("NewsText")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	def, err := newsDeclaration().Model(ModelNamed("NewsText")).Origin("news").Finalize(reg)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if def.Type != handle {
		t.Fatal("expected named reference to resolve to the registered handle")
	}
	if def.OriginField() != "news_id" {
		t.Fatalf("expected news_id, got %s", def.OriginField())
	}
}

func TestFinalizeConfigurationErrors(t *testing.T) {
	cases := []struct {
		name  string
		build func() *Declaration
	}{
		{name: "no properties", build: func() *Declaration { return Declare("News") }},
		{name: "duplicate property", build: func() *Declaration {
			return Declare("News").Property("title", String).Property("Title", Text)
		}},
		{name: "reserved id", build: func() *Declaration { return Declare("News").Property("id", String) }},
		{name: "reserved locale", build: func() *Declaration { return Declare("News").Property("locale", String) }},
		{name: "reserved origin field", build: func() *Declaration {
			return Declare("News").Origin("news").Property("news_id", String)
		}},
		{name: "empty origin", build: func() *Declaration { return newsDeclaration().Origin(" ") }},
		{name: "empty locale", build: func() *Declaration { return newsDeclaration().Locale("") }},
		{name: "unknown kind", build: func() *Declaration { return Declare("News").Property("title", Kind("blob")) }},
		{name: "unregistered model", build: func() *Declaration { return newsDeclaration().Model(ModelNamed("Missing")) }},
		{name: "empty model name", build: func() *Declaration { return newsDeclaration().Model(ModelNamed("")) }},
		{name: "empty base", build: func() *Declaration { return Declare("").Property("title", String) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build().Finalize(NewRegistry())
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestFinalizeRejectsDuplicateBase(t *testing.T) {
	reg := NewRegistry()
	if _, err := newsDeclaration().Finalize(reg); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	if _, err := newsDeclaration().Finalize(reg); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for second definition, got %v", err)
	}
}

func TestModelTypeHandle(t *testing.T) {
	reg := NewRegistry()
	handle := &TranslationType{Name: "Custom"}
	def, err := newsDeclaration().Model(ModelType(handle)).Finalize(reg)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if def.Type != handle {
		t.Fatal("expected handle to be used as is")
	}
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.Register("NewsText")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	second, err := reg.Register(" NewsText ")
	if err != nil {
		t.Fatalf("register again: %v", err)
	}
	if first != second {
		t.Fatal("expected the same handle for the same name")
	}
	if first.ID == uuid.Nil {
		t.Fatal("expected deterministic id")
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"title":     "title",
		"Sub Title": "sub_title",
		"  body ":   "body",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitSeparatesKeys(t *testing.T) {
	def, err := newsDeclaration().Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	origin := uuid.New()
	in, err := def.Split(map[string]any{
		"origin_id": origin.String(),
		"locale":    " ru ",
		"title":     "Заголовок",
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if in.OriginID != origin || in.Locale != "ru" {
		t.Fatalf("unexpected input %+v", in)
	}
	if len(in.Payload) != 1 || in.Payload["title"] != "Заголовок" {
		t.Fatalf("unexpected payload %v", in.Payload)
	}
	if err := def.Validate(in); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSplitMapsPayloadKeysToDeclaredNames(t *testing.T) {
	def, err := Declare("Post").
		Property("Title", String, Required()).
		Property("Sub Title", Text).
		Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	in, err := def.Split(map[string]any{
		"origin_id": uuid.New().String(),
		"locale":    "en",
		"Title":     "Hello",
		"Sub Title": "World",
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if in.Payload["title"] != "Hello" || in.Payload["sub_title"] != "World" || len(in.Payload) != 2 {
		t.Fatalf("unexpected payload %v", in.Payload)
	}
	if err := def.Validate(in); err != nil {
		t.Fatalf("validate: %v", err)
	}

	in, err = def.Split(map[string]any{"locale": "en", "summary": "unknown"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, ok := in.Payload["summary"]; !ok {
		t.Fatalf("expected undeclared key kept for validation, got %v", in.Payload)
	}
}

func TestSplitRejectsFieldGivenTwice(t *testing.T) {
	def, err := Declare("Post").Property("Title", String).Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	_, err = def.Split(map[string]any{"Title": "Hello", "title": "Hello again"})
	if !errors.Is(err, ErrInvalidFields) {
		t.Fatalf("expected ErrInvalidFields, got %v", err)
	}
}

func TestSplitTreatsEmptyOriginAsMissing(t *testing.T) {
	def, err := newsDeclaration().Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	in, err := def.Split(map[string]any{"origin_id": "", "locale": "en", "title": "News"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if in.OriginID != uuid.Nil {
		t.Fatalf("expected nil origin, got %s", in.OriginID)
	}
	err = def.Validate(in)
	if !errors.Is(err, ErrInvalidFields) {
		t.Fatalf("expected ErrInvalidFields, got %v", err)
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || fieldErrs["origin_id"] == nil {
		t.Fatalf("expected origin_id field error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSplitRejectsMalformedOrigin(t *testing.T) {
	def, err := newsDeclaration().Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := def.Split(map[string]any{"origin_id": "not-a-uuid"}); !errors.Is(err, ErrInvalidFields) {
		t.Fatalf("expected ErrInvalidFields, got %v", err)
	}
	if _, err := def.Split(map[string]any{"locale": 42}); !errors.Is(err, ErrInvalidFields) {
		t.Fatalf("expected ErrInvalidFields for non-string locale, got %v", err)
	}
}

func TestValidateRejectsPayload(t *testing.T) {
	def, err := newsDeclaration().Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	cases := []map[string]any{
		{},
		{"title": ""},
		{"title": "News", "summary": "unknown"},
		{"title": 12},
	}
	for _, payload := range cases {
		err := def.Validate(Input{OriginID: uuid.New(), Locale: "en", Payload: payload})
		if !errors.Is(err, ErrInvalidFields) {
			t.Fatalf("expected ErrInvalidFields for %v, got %v", payload, err)
		}
	}
	if err := def.Validate(Input{OriginID: uuid.New(), Locale: "en", Payload: map[string]any{"title": "News", "content": nil}}); err != nil {
		t.Fatalf("expected optional null to validate: %v", err)
	}
}

func TestPropertyLookup(t *testing.T) {
	def, err := newsDeclaration().Finalize(NewRegistry())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	prop, ok := def.Property("Title")
	if !ok || !prop.Required || prop.MaxLength != 40 {
		t.Fatalf("unexpected property %+v", prop)
	}
	if _, ok := def.Property("missing"); ok {
		t.Fatal("expected missing property lookup to fail")
	}
}
