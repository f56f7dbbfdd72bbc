// Package translate localizes the messages of the MIX tools.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK is the locale used when the system reports none.
const FALLBACK = "en-US"

var printer = NewPrinter()

// NewPrinter returns a message printer for the user's preferred locales.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("mix: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
