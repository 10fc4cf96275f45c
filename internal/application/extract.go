package application

import (
	"strings"

	"food-assistant/internal/domain"
)

// The reply is scanned line by line for two marker phrases. This is a
// deliberate micro-protocol with the model's output format, not general
// language understanding: dish names match by substring, ingredients by
// colon-split and exact token. The matching rules must stay in lockstep
// with the formats named in the system instruction.
const (
	addMarker     = "додати до замовлення"
	excludeMarker = "виключити інгредієнт"
)

// applyReply applies zero or more order mutations found in the model reply.
// A line may fire both markers, but each marker fires at most once per line.
// Unmatched dish names and exclude lines without a colon are ignored.
func (a *Agent) applyReply(o *domain.UserOrder, reply string) {
	for _, line := range strings.Split(reply, "\n") {
		lower := strings.ToLower(line)

		if strings.Contains(lower, addMarker) {
			for _, dish := range a.catalog {
				// First catalog entry whose name appears anywhere in the line wins.
				if strings.Contains(lower, strings.ToLower(dish.Name)) {
					o.AddLine(dish)
					a.metrics.DishesAdded.Inc()
					break
				}
			}
		}

		if strings.Contains(lower, excludeMarker) {
			parts := strings.SplitN(lower, ":", 2)
			if len(parts) == 2 {
				o.ExcludeIngredient(strings.TrimSpace(parts[1]))
				a.metrics.IngredientsExcluded.Inc()
			}
		}
	}
}
