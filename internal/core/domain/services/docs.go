// Package services holds the domain services that check placement
// preconditions across several entities at once.
//
// The package includes:
//   - ChargeValidator: every package is complete and carries a delivery fee
//   - PickupTimeResolver: defaults and bounds a package's pick-up start
//   - BusinessHoursGate: checks pick-up starts against a customer's schedule
//
// None of them persist anything; callers run them inside their unit of work
// before committing a transition.
package services
