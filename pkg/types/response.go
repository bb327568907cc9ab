package types

// SuccessEnvelope wraps every successful storefront API payload so clients
// always unwrap `data`.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Code carries the machine-readable
// taxonomy value; Details is populated only for codes whose metadata allows
// it (field validation, item availability, dependency checks).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
