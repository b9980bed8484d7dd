package interfaces

// LocaleProvider exposes the active locale signal. Resolvers only read from
// it; hosts mutate the concrete provider elsewhere.
type LocaleProvider interface {
	CurrentLocale() string
	DefaultLocale() string
}

// LocaleSetter is implemented by providers whose active locale can be changed
// at runtime.
type LocaleSetter interface {
	SetLocale(code string) error
}
