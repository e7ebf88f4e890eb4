package dto

import (
	"github.com/mrops-br/product-ms/internal/domain"
)

// SubscriptionDTO is the subscription shape exchanged with callers
type SubscriptionDTO struct {
	BuyerID  string `json:"buyerId"`
	ProdID   string `json:"prodId"`
	Quantity int    `json:"quantity"`
}

// BuyerDTO is the buyer record owned by the buyer service.
// IsPrivileged is transmitted as text, "True" for privileged buyers.
type BuyerDTO struct {
	BuyerID      string `json:"buyerId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsPrivileged string `json:"isPrivileged"`
}

// SubscriptionRequest represents the request to subscribe a buyer to a product
type SubscriptionRequest struct {
	Subscription SubscriptionDTO `json:"subscription"`
	Buyer        BuyerDTO        `json:"buyer"`
}

// ToSubscriptionDTO converts a domain Subscription to SubscriptionDTO
func ToSubscriptionDTO(s *domain.Subscription) *SubscriptionDTO {
	return &SubscriptionDTO{
		BuyerID:  s.Key.BuyerID,
		ProdID:   s.Key.ProdID,
		Quantity: s.Quantity,
	}
}
