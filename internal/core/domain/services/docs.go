// Package services provides domain services that compose several aggregates.
//
// The package includes:
//   - CheckoutSummarizer: prices a cart for a shipping address and optional coupon
//   - OrderDrafter: freezes a summary and catalog details into an order draft
//   - ShippingPolicy and DeliveryPolicy: configurable pricing and ETA rules
//
// All services are pure: they never load or persist anything and never cache.
package services
