// Package order holds the delivery order aggregate and the entities it owns
// by id: packages, their charges and append-only events, and the order's
// discounts.
//
// The package includes:
//   - DeliveryOrder: customer lineage, status, the one-time placedAt stamp
//   - Package: logistics data that is editable before placement and frozen after
//   - Charge and Discount: payment preconditions reconciled from payment callbacks
//   - Event: the package history, never updated or deleted
//   - Status: the forward-only state machine shared by orders and packages
//
// Key business rules:
//   - Status moves REQUEST/STARTED -> (PENDING) -> PLACED -> COMPLETE|CANCELED|INCOMPLETE, never back
//   - placedAt is set exactly once, when the order becomes PLACED
//   - An order follows its packages: all placed packages cancelled or incomplete
//     cancels a placed order; all packages incomplete makes an open order incomplete
//   - Restricted package fields need a privileged caller; the others need an updatable status
package order
