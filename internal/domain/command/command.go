// Package command implements the cart-command protocol embedded in model
// output: the `[[KIND:{json}]]` grammar, the incremental parser that extracts
// commands from a streamed response, and the display-text cleanup.
package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the five recognized command kinds. The string values are
// the wire tokens and must not change; deployed prompts are written against
// them.
type Kind string

const (
	KindAddToCart      Kind = "ADD_TO_CART"
	KindRemoveFromCart Kind = "REMOVE_FROM_CART"
	KindClearCart      Kind = "CLEAR_CART"
	KindShowCart       Kind = "SHOW_CART"
	KindPlaceOrder     Kind = "PLACE_ORDER"
)

// ParseKind maps a wire token to its Kind. The second return is false for
// unrecognized tokens, whose spans are passed through as plain text.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindAddToCart, KindRemoveFromCart, KindClearCart, KindShowCart, KindPlaceOrder:
		return Kind(s), true
	}

	return "", false
}

// Command is one parsed instruction. Payload fields are only meaningful for
// the kinds that carry them; validation happens at decode time so a Command
// that exists is always well-formed.
type Command struct {
	Kind                Kind
	ItemName            string
	Quantity            int
	SpecialInstructions string
}

// Key is the deduplication key for at-most-once application within one
// assistant turn. CLEAR_CART dedupes on kind alone; every other kind dedupes
// on (kind, item name, quantity), so a re-extracted emission never
// double-applies while genuinely distinct repeats still do.
func (c Command) Key() string {
	if c.Kind == KindClearCart {
		return string(c.Kind)
	}

	return fmt.Sprintf("%s|%s|%d", c.Kind, strings.ToLower(c.ItemName), c.Quantity)
}

// payload is the JSON shape shared by all command kinds; absent fields stay
// zero.
type payload struct {
	ItemName            string `json:"itemName"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

// decode validates a raw payload against its kind and produces a Command.
// Invalid JSON or a shape violation is an error; the caller discards the
// single offending command and keeps parsing.
func decode(kind Kind, raw string) (Command, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Command{}, errors.Wrapf(err, "invalid %s payload", kind)
	}

	cmd := Command{Kind: kind}
	switch kind {
	case KindAddToCart:
		if strings.TrimSpace(p.ItemName) == "" {
			return Command{}, errors.Errorf("%s payload is missing itemName", kind)
		}
		cmd.ItemName = strings.TrimSpace(p.ItemName)
		cmd.Quantity = p.Quantity
		cmd.SpecialInstructions = strings.TrimSpace(p.SpecialInstructions)
	case KindRemoveFromCart:
		if strings.TrimSpace(p.ItemName) == "" {
			return Command{}, errors.Errorf("%s payload is missing itemName", kind)
		}
		cmd.ItemName = strings.TrimSpace(p.ItemName)
		cmd.Quantity = p.Quantity
	case KindClearCart, KindShowCart, KindPlaceOrder:
		// Payload must be a JSON object but carries no fields.
	}

	return cmd, nil
}
