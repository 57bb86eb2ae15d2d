package postgres

import (
	"log/slog"
	"time"

	"bank-records/internal/domain/card"
	"bank-records/internal/domain/product"
)

var cardsTable = &productTable[card.Card]{
	name:     "cards",
	idColumn: "card_number",
	columns:  []string{"card_type", "total_limit", "amount_used", "available_amount"},
	selects:  []string{"card_type", "total_limit::text", "amount_used::text", "available_amount::text"},
	values: func(c *card.Card) []any {
		return []any{c.CardType, c.TotalLimit.String(), c.AmountUsed.String(), c.AvailableAmount.String()}
	},
	scanTargets: func(c *card.Card) ([]any, func() error) {
		var totalLimit, amountUsed, available string
		return []any{&c.CardNumber, &c.CustomerID, &c.CardType, &totalLimit, &amountUsed, &available, &c.CreatedAt, &c.UpdatedAt},
			func() (err error) {
				if c.TotalLimit, err = parseAmount("total_limit", totalLimit); err != nil {
					return err
				}
				if c.AmountUsed, err = parseAmount("amount_used", amountUsed); err != nil {
					return err
				}
				c.AvailableAmount, err = parseAmount("available_amount", available)
				return err
			}
	},
	stamp: func(c *card.Card, createdAt, updatedAt time.Time) {
		c.CreatedAt, c.UpdatedAt = createdAt, updatedAt
	},
}

func NewCardRepository(db Querier, logger *slog.Logger) product.Repository[card.Card] {
	return newProductRepository[card.Card, *card.Card](db, cardsTable, logger)
}
