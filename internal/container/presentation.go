package container

import "strings"

// Presentation defines how a single entry is rendered
type Presentation int

const (
	// PresentationPlain renders entries as 'KEY VALUE'
	PresentationPlain Presentation = iota

	// PresentationBracketed renders entries as '[KEY] = VALUE'
	PresentationBracketed
)

func (presentation Presentation) line(builder *strings.Builder, key, value string) {
	switch presentation {
	case PresentationBracketed:
		builder.WriteString("[" + key + "] = " + value)
	default:
		builder.WriteString(key + " " + value)
	}
	builder.WriteByte('\n')
}
