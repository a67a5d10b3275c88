package errs

// Error classes shared by the cart, payment and checkout layers.
// Concrete errors are attached to one of these with Mark so callers can branch with errors.Is.
var (
	// Missing or malformed input caught before any network call.
	ErrValidation = New("validation error")
	// No gateway attached, or the gateway lacks the requested operation.
	ErrConfiguration = New("configuration error")
	// Insufficient or vanished inventory.
	ErrStock = New("stock error")
	// Transport succeeded, gateway did not approve.
	ErrDecline = New("gateway decline")
	// Network failure, timeout or malformed envelope.
	ErrTransport = New("gateway transport error")

	ErrDatabaseOperationFailed = New("database operation failed")
)
