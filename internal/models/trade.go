package models

import "time"

// TradeOffer is a peer-declared offer on the global market board. Offers are
// cosmetic: posting or accepting one never moves cards, the exchange happens
// face to face.
type TradeOffer struct {
	ID         string     `json:"id"`
	UserName   string     `json:"user_name"`
	Offering   []int      `json:"offering"`
	Requesting Department `json:"requesting"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateTradeOfferRequest struct {
	UserName   string     `json:"user_name" binding:"required"`
	Offering   []int      `json:"offering"`
	Requesting Department `json:"requesting" binding:"required"`
}

type BurnTradeRequest struct {
	CardIDs []int `json:"card_ids" binding:"required"`
}

type BurnTradeResponse struct {
	GrantedCard Card     `json:"granted_card"`
	NewUnlocks  []string `json:"new_unlocks,omitempty"`
}
