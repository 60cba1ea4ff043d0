// Package kernel holds the value objects shared by every aggregate of the
// order lifecycle: identifiers, tracking numbers, geographic points and the
// tri-state Nullable used by partial updates.
//
// All values are immutable. Zero values are invalid where it matters and are
// rejected by Validate.
package kernel
