package order_test

import (
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

func ExampleStatus_String() {
	fmt.Println(order.Placed)
	fmt.Println(order.Unknown)
	// Output:
	// PLACED
	// UNKNOWN
}

func ExampleStatus_ValidateTransition() {
	fmt.Println(order.Started.ValidateTransition(order.Placed) == nil)
	fmt.Println(order.Complete.ValidateTransition(order.Canceled) == nil)
	// Output:
	// true
	// false
}

func ExampleStatus_Cancel() {
	_, err := order.Pending.Cancel()
	fmt.Println(err != nil)

	next, _ := order.Placed.Cancel()
	fmt.Println(next)
	// Output:
	// true
	// CANCELED
}
