// Package order provides domain entities and business logic for purchase
// order management in the procurement system. It implements the
// PurchaseOrder aggregate root with lifecycle management, exact decimal
// money computation and state transitions.
//
// The package includes:
//   - PurchaseOrder: The aggregate root owning line items, totals and status
//   - Item: A purchased line with derived subtotal and tax amount
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, order number and supplier reference
//   - totalAmount is the sum of item subtotals; payableAmount derives from it
//   - Money arithmetic is exact base-10 at fixed scales, never binary floats
//   - Status follows the procurement workflow from Draft to Completed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
