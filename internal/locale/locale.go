package locale

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/goliatone/go-translatable/pkg/interfaces"
)

var (
	ErrInvalidLocale = errors.New("locale: invalid locale tag")
	ErrLocaleEmpty   = errors.New("locale: locale tag is required")
)

// Normalize returns the comparable form of a locale tag. Well-formed BCP 47
// tags are canonicalised ("en-us" becomes "en-US"); anything else is only
// trimmed so that comparisons stay exact.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return tag.String()
}

// Parse validates a locale tag and returns its normalized form.
func Parse(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", ErrLocaleEmpty
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, trimmed)
	}
	return tag.String(), nil
}

// Provider holds the process-wide active locale. It is safe for concurrent
// use; resolvers read it on every resolution.
type Provider struct {
	mu       sync.RWMutex
	fallback string
	current  string
}

var (
	_ interfaces.LocaleProvider = (*Provider)(nil)
	_ interfaces.LocaleSetter   = (*Provider)(nil)
)

// NewProvider constructs a provider with the supplied default locale.
func NewProvider(defaultLocale string) (*Provider, error) {
	normalized, err := Parse(defaultLocale)
	if err != nil {
		return nil, err
	}
	return &Provider{fallback: normalized}, nil
}

// CurrentLocale returns the active locale, or the default when none was set.
func (p *Provider) CurrentLocale() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == "" {
		return p.fallback
	}
	return p.current
}

// DefaultLocale returns the configured default locale.
func (p *Provider) DefaultLocale() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fallback
}

// SetLocale switches the active locale.
func (p *Provider) SetLocale(code string) error {
	normalized, err := Parse(code)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.current = normalized
	p.mu.Unlock()
	return nil
}

// Reset returns the provider to its default locale.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.current = ""
	p.mu.Unlock()
}

// Func adapts a provider to the callable shape resolvers consume.
func Func(provider interfaces.LocaleProvider) func() string {
	if provider == nil {
		return func() string { return "" }
	}
	return provider.CurrentLocale
}
