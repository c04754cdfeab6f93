// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2017-2020 Marcus Perlick
package textmessage

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fractalqb/typeshape"
)

// Content is a localized message. Values that are typeshape.Content are
// rendered into strings before the message is formatted.
type Content struct {
	Printer *message.Printer
	Format  string
	Values  []interface{}
}

func (c Content) Emit(wr io.Writer) (n int) {
	vals := make([]interface{}, len(c.Values))
	for i, v := range c.Values {
		if cnt, ok := v.(typeshape.Content); ok {
			vals[i] = typeshape.String(cnt)
		} else {
			vals[i] = v
		}
	}
	n, err := c.Printer.Fprintf(wr, c.Format, vals...)
	if err != nil {
		panic(typeshape.EmitError{Count: n, Err: err})
	}
	return n
}

func Msg(pr *message.Printer, fmt string, values ...interface{}) Content {
	return Content{pr, fmt, values}
}

// Printer returns a printer for the language tag lang. Unknown or
// malformed tags fall back to English.
func Printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
