package command

import (
	"regexp"
	"strings"
)

const (
	markerOpen  = "[["
	markerClose = "]]"
)

// Malformed reports a recognized command kind whose payload failed to decode.
// The command is discarded, the surrounding prose is unaffected.
type Malformed struct {
	Kind    Kind
	Payload string
	Err     error
}

// Result is the outcome of feeding the parser more text: the commands newly
// extracted, in order of appearance, and the cleaned text to display. Display
// is always the cleaned form of a prefix of the full response with command
// spans removed, regardless of how the response was chunked.
type Result struct {
	Commands  []Command
	Display   string
	Malformed []Malformed
}

// Parser extracts embedded commands from a response that arrives in
// incremental chunks. It is a two-state machine over a rolling buffer: text
// is in prose until an opening marker is seen, and a marker span is only
// consumed once its closing marker has arrived. A partially written marker is
// never displayed; prose preceding an unresolved opening marker is withheld
// until the marker completes or the stream ends.
//
// A Parser serves exactly one streamed response and is not safe for
// concurrent use.
type Parser struct {
	pending strings.Builder // Rolling buffer: text not yet emitted or consumed.
	emitted strings.Builder // Prose emitted so far, command spans removed.
	flushed bool
}

// NewParser returns a parser for one streamed response.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends a chunk of the streamed response and returns everything newly
// extractable. Safe to call with chunks of any size, including mid-marker
// splits.
func (p *Parser) Feed(chunk string) Result {
	if p.flushed {
		return Result{Display: p.Display()}
	}
	p.pending.WriteString(chunk)

	return p.extract(false)
}

// Flush ends the stream: any remaining complete commands are extracted and
// all leftover text, including an unterminated marker, is emitted verbatim as
// prose. The parser accepts no further input afterwards.
func (p *Parser) Flush() Result {
	if p.flushed {
		return Result{Display: p.Display()}
	}
	p.flushed = true

	return p.extract(true)
}

// Display returns the current cleaned display text.
func (p *Parser) Display() string {
	return Clean(p.emitted.String())
}

func (p *Parser) extract(final bool) Result {
	var res Result
	buf := p.pending.String()
	p.pending.Reset()

	for {
		open := strings.Index(buf, markerOpen)
		if open < 0 {
			// Pure prose. Hold back a trailing '[' that could still grow
			// into an opening marker.
			if !final && strings.HasSuffix(buf, "[") {
				p.emitted.WriteString(buf[:len(buf)-1])
				p.pending.WriteString(buf[len(buf)-1:])
			} else {
				p.emitted.WriteString(buf)
			}

			break
		}

		rel := strings.Index(buf[open:], markerClose)
		if rel < 0 {
			if final {
				// Unterminated marker at end of stream: show the customer
				// exactly what the model produced.
				p.emitted.WriteString(buf)

				break
			}
			// Withhold everything from the unresolved marker's preceding
			// prose onward until it completes.
			p.pending.WriteString(buf)

			break
		}

		p.emitted.WriteString(buf[:open])
		span := buf[open+len(markerOpen) : open+rel]
		full := buf[open : open+rel+len(markerClose)]
		buf = buf[open+rel+len(markerClose):]

		token, raw, found := strings.Cut(span, ":")
		kind, known := ParseKind(strings.TrimSpace(token))
		if !found || !known {
			// Not a command span. Pass it through untouched.
			p.emitted.WriteString(full)

			continue
		}

		cmd, err := decode(kind, strings.TrimSpace(raw))
		if err != nil {
			res.Malformed = append(res.Malformed, Malformed{Kind: kind, Payload: raw, Err: err})

			continue
		}
		res.Commands = append(res.Commands, cmd)
	}

	res.Display = p.Display()

	return res
}

var (
	blankLineRuns  = regexp.MustCompile(`\n[ \t]*\n([ \t]*\n)+`)
	currencySpaces = regexp.MustCompile(`\$\s+(\d)`)
	boldSpaces     = regexp.MustCompile(`\*\*[ \t]+([^*]*?)[ \t]+\*\*`)
)

// Clean normalizes display text after command spans are removed: runs of
// blank lines collapse to one, stray spaces inside bold markers and between a
// currency symbol and its amount are removed. Sentence spacing is otherwise
// left exactly as the model wrote it.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	s = currencySpaces.ReplaceAllString(s, "$$$1")
	s = boldSpaces.ReplaceAllString(s, "**$1**")

	return s
}
