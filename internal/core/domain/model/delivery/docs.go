// Package delivery contains the Delivery aggregate: one shipment batch of a
// purchase order tracked through the linear receiving pipeline from shipping
// to warehousing. Pipeline steps validate the current status before stamping
// their facts; an impossible step is a normal negative result, not an error.
package delivery
