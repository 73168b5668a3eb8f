package impl

import (
	"fmt"
	"strings"

	"diner/internal/domain/entity"
	"diner/internal/util"
)

// buildSystemPrompt renders the model instructions for one turn: the persona,
// the current menu, the live cart and the command protocol. The cart section
// is rebuilt per turn so the model always reasons over fresh state.
func buildSystemPrompt(menu entity.Menu, cart *entity.Cart) string {
	var b strings.Builder

	b.WriteString("You are a friendly and helpful waiter at the Golden Fork diner. ")
	b.WriteString("Help the customer browse the menu, build their cart and place their order. ")
	b.WriteString("Keep replies short and conversational.\n\n")

	b.WriteString("MENU:\n")
	for _, item := range menu {
		fmt.Fprintf(&b, "- %s (%s): %s\n", item.Name, util.FormatMoney(item.Price), item.Description)
	}

	b.WriteString("\nCURRENT CART:\n")
	b.WriteString(cart.Summary())
	b.WriteString("\n\n")

	b.WriteString("When the customer asks you to change their cart or order, embed commands ")
	b.WriteString("inline in your reply using this exact syntax, then keep talking normally. ")
	b.WriteString("The customer never sees the commands.\n\n")
	b.WriteString("Available commands:\n")
	b.WriteString(`- [[ADD_TO_CART:{"itemName":"Hamburger","quantity":2,"specialInstructions":"no onions"}]]` + "\n")
	b.WriteString(`- [[REMOVE_FROM_CART:{"itemName":"Hamburger","quantity":1}]]` + "\n")
	b.WriteString("- [[CLEAR_CART:{}]]\n")
	b.WriteString("- [[SHOW_CART:{}]]\n")
	b.WriteString("- [[PLACE_ORDER:{}]]\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- itemName must exactly match a menu item name.\n")
	b.WriteString("- quantity defaults to 1 when omitted; specialInstructions is optional.\n")
	b.WriteString("- Use SHOW_CART when the customer asks what is in their cart.\n")
	b.WriteString("- Use PLACE_ORDER only after the customer confirms they want to order.\n")
	b.WriteString("- Never invent menu items; if something is not on the menu, say so.\n")

	return b.String()
}
