package listing

import (
	"fmt"
	"html"
	"strings"

	"github.com/slabworks/lister/internal/card"
)

// descriptionClosing is the fixed boilerplate every generated
// description ends with.
const descriptionClosing = "Ships in a penny sleeve and top loader. Please review the photos for exact condition."

// Description generates the listing description block: one label:value
// line per non-empty attribute, conditional autograph and serial lines,
// and the boilerplate closing. Every interpolated value is HTML-escaped
// so stray angle brackets or quotes in source data cannot corrupt the
// markup.
func Description(c card.Card) string {
	var b strings.Builder

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s<br>", label, html.EscapeString(value))
		}
	}

	line("Player", c.Player)
	line("Team", c.Team)
	line("League", c.League)
	line("Sport", c.Sport)
	line("Season", c.Season)
	line("Year", c.Year)
	line("Set", c.Set)
	line("Card Number", c.Number)
	line("Parallel/Features", c.Features)
	line("Manufacturer", c.Brand)
	line("Condition", c.Condition)

	if c.Autograph {
		b.WriteString("Autographed card.<br>")
	}
	if c.Serial != "" {
		fmt.Fprintf(&b, "Serial numbered /%s.<br>", html.EscapeString(c.Serial))
	}

	b.WriteString(descriptionClosing)
	return b.String()
}
