package encode

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/printer"
)

// Colors maps YAML token classes to terminal color attributes.
type Colors struct {
	Key    color.Attribute
	String color.Attribute
	Number color.Attribute
	Bool   color.Attribute
	Anchor color.Attribute
	Alias  color.Attribute
}

// NewColors returns the default color scheme.
func NewColors() *Colors {
	return &Colors{
		Key:    color.FgHiCyan,
		String: color.FgHiGreen,
		Number: color.FgHiMagenta,
		Bool:   color.FgHiYellow,
		Anchor: color.FgHiBlue,
		Alias:  color.FgHiBlue,
	}
}

func ansi(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

func prop(attr color.Attribute) printer.PrintFunc {
	return func() *printer.Property {
		return &printer.Property{
			Prefix: ansi(attr),
			Suffix: ansi(color.Reset),
		}
	}
}

func (c *Colors) printer() *printer.Printer {
	return &printer.Printer{
		MapKey: prop(c.Key),
		String: prop(c.String),
		Number: prop(c.Number),
		Bool:   prop(c.Bool),
		Anchor: prop(c.Anchor),
		Alias:  prop(c.Alias),
	}
}
