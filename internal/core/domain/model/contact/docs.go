// Package contact models the sender and recipient book of a customer.
//
// Contacts and addresses come in two variants behind one read interface:
// saved records are mutable and reused across orders, snapshots are
// immutable copies made when an order is placed and linked back to the
// saved record they were taken from. An Association pairs a contact with an
// address and carries the last note used for that pairing.
package contact
