package errors_test

import (
	"fmt"

	"github.com/DeBrosOfficial/assettracker/pkg/errors"
)

// Example demonstrates creating and using validation errors.
func ExampleNewValidationError() {
	err := errors.NewValidationError("recipient", "must be a hex address", "0x12")
	fmt.Println(err.Error())
	fmt.Println("Code:", err.Code())
	// Output:
	// validation error: recipient: must be a hex address
	// Code: VALIDATION_ERROR
}

// Example demonstrates the distinct not-found result of an asset lookup.
func ExampleNewNotFoundError() {
	err := errors.NewNotFoundError("asset", "42")
	fmt.Println(err.Error())
	fmt.Println("HTTP Status:", errors.StatusCode(err))
	// Output:
	// asset with ID '42' not found
	// HTTP Status: 404
}

// Example demonstrates wrapping errors with context.
func ExampleWrap() {
	originalErr := errors.NewNotFoundError("asset", "42")
	wrappedErr := errors.Wrap(originalErr, "failed to load asset detail")

	fmt.Println(wrappedErr.Error())
	fmt.Println("Is NotFound:", errors.IsNotFound(wrappedErr))
	// Output:
	// failed to load asset detail: asset with ID '42' not found
	// Is NotFound: true
}
