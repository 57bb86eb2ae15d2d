package card

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCardType = "Credit Card"

// DefaultTotalLimit is the limit a new card is issued with.
var DefaultTotalLimit = decimal.NewFromInt(100_000)

// Card amounts are descriptive values supplied by callers; nothing here derives one from
// another.
type Card struct {
	CardNumber      int64           `json:"cardNumber"`
	CustomerID      int64           `json:"customerId"`
	CardType        string          `json:"cardType"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (c *Card) ProductID() int64 { return c.CardNumber }

func (c *Card) OwnerID() int64 { return c.CustomerID }

func (c *Card) Issue(customerID, cardNumber int64) {
	now := time.Now()
	c.CustomerID = customerID
	c.CardNumber = cardNumber
	c.CardType = DefaultCardType
	c.TotalLimit = DefaultTotalLimit
	c.AmountUsed = decimal.Zero
	c.AvailableAmount = DefaultTotalLimit
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Card) ApplyChanges(from *Card) {
	if from == nil {
		return
	}
	c.CardType = from.CardType
	c.TotalLimit = from.TotalLimit
	c.AmountUsed = from.AmountUsed
	c.AvailableAmount = from.AvailableAmount
	c.UpdatedAt = time.Now()
}
