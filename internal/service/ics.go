package service

import (
	"strings"

	"github.com/pitchline/pitchline-api/internal/domain"
)

const icsTimeLayout = "20060102T150405Z"

// renderICS builds a minimal RFC 5545 document from events. Lines use
// CRLF endings and text values escape the characters the format
// reserves.
func renderICS(events []domain.CalendarEvent) []byte {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//pitchline//calendar//EN")

	for _, event := range events {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+event.ID+"@pitchline")
		writeLine(&b, "DTSTAMP:"+event.CreatedAt.UTC().Format(icsTimeLayout))
		writeLine(&b, "DTSTART:"+event.StartsAt.UTC().Format(icsTimeLayout))
		writeLine(&b, "DTEND:"+event.EndsAt.UTC().Format(icsTimeLayout))
		writeLine(&b, "SUMMARY:"+escapeICS(event.Title))
		if event.Location != "" {
			writeLine(&b, "LOCATION:"+escapeICS(event.Location))
		}
		if event.Notes != "" {
			writeLine(&b, "DESCRIPTION:"+escapeICS(event.Notes))
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String())
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
