// Package approval contains the Approval aggregate: one step in a purchase
// order's multi-level approval chain. Chains are sized by order amount and
// resolved step by step; any rejection voids the remaining pending steps.
package approval
