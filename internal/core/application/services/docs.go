// Package services contains the write-side orchestration for the procurement
// core. Three services mirror the three aggregates: OrderService owns order
// creation and the order status machine, ApprovalService builds tiered
// approval chains and resolves individual decisions, DeliveryService drives
// delivery batches through the receiving pipeline.
//
// Every operation runs create, mutate, persist, commit inside one unit of
// work. Cross-service cascades (an approval outcome or a delivery milestone
// moving the order) are explicit calls into OrderService's public transition
// API, made after the triggering record is committed. Cascade failures are
// logged and swallowed: the triggering record stands even when the order-level
// follow-up is refused.
package services
