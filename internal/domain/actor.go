package domain

// Actor is the explicit caller context passed into every core operation.
// Identity and role are resolved by the request-handling layer; the core
// never reads ambient session state.
type Actor struct {
	EmployeeID string
	Role       Role
}
