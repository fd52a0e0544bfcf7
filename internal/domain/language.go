package domain

import "fmt"

type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is the ordered set of languages the remote services accept.
type Catalog []Language

func DefaultCatalog() Catalog {
	return Catalog{
		{Code: "en", Name: "English"},
		{Code: "hi", Name: "Hindi"},
		{Code: "mr", Name: "Marathi"},
		{Code: "ta", Name: "Tamil"},
		{Code: "pa", Name: "Punjabi"},
		{Code: "gu", Name: "Gujarati"},
		{Code: "bn", Name: "Bengali"},
		{Code: "kn", Name: "Kannada"},
		{Code: "te", Name: "Telugu"},
		{Code: "ml", Name: "Malayalam"},
	}
}

func DefaultSpeechCatalog() Catalog {
	return Catalog{
		{Code: "as", Name: "Assamese"},
		{Code: "hi", Name: "Hindi"},
		{Code: "mr", Name: "Marathi"},
		{Code: "ta", Name: "Tamil"},
		{Code: "bn", Name: "Bengali"},
	}
}

func (c Catalog) Lookup(code string) (Language, bool) {
	for _, l := range c {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Must returns the language for code or an ErrUnknownLanguage error.
func (c Catalog) Must(code string) (Language, error) {
	l, ok := c.Lookup(code)
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return l, nil
}

// DisplayName mirrors the picker label: the language name, or a prompt when
// the code is not in the catalog.
func (c Catalog) DisplayName(code string) string {
	if l, ok := c.Lookup(code); ok {
		return l.Name
	}
	return "Select Language"
}
