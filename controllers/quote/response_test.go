package quote

import (
	"testing"

	"tour-booking/services/negotiation"
	quoteTypes "tour-booking/types/quote"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := map[negotiation.Kind]int{
		negotiation.KindValidation: fiber.StatusUnprocessableEntity,
		negotiation.KindNotFound:   fiber.StatusNotFound,
		negotiation.KindForbidden:  fiber.StatusForbidden,
		negotiation.KindConflict:   fiber.StatusConflict,
		negotiation.KindExpired:    fiber.StatusGone,
		negotiation.KindInternal:   fiber.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusFor(kind), kind)
	}
}

func TestToLineItems(t *testing.T) {
	price := int64(1500)
	items := toLineItems([]quoteTypes.LineItemPayload{{Item: "Lunch", Price: &price}, {Item: "Guide"}})

	assert.Len(t, items, 2)
	assert.Equal(t, "Lunch", items[0].Item)
	assert.Equal(t, int64(1500), *items[0].Price)
	assert.Nil(t, items[1].Price)

	assert.NotNil(t, toLineItems(nil))
	assert.Empty(t, toLineItems(nil))
}
