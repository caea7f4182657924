package http

// RegisterRequest is the JSON body for POST /v1/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the JSON body for POST /v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the success shape for register and login.
type SessionResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}

// ProfileResponse is the success shape for GET /v1/me. The credential hash
// has no field here by construction.
type ProfileResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
	Image       string `json:"image,omitempty"`
	Token       string `json:"token"`
}

// ErrorResponse is the common error shape. Violations is only populated for
// validation failures.
type ErrorResponse struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Violations       []string `json:"violations,omitempty"`
}

// unauthorizedResponse is the single 401 body. Unknown email, wrong
// password and unresolvable identity all produce exactly this value.
var unauthorizedResponse = ErrorResponse{
	Error:            "unauthorized",
	ErrorDescription: "Authentication failed",
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
