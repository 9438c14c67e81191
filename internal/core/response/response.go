// Package response defines the envelope every service operation returns and
// the messages carried in it.
package response

import "net/http"

const (
	MsgUserCreated      = "User created successfully"
	MsgUserLoggedIn     = "User logged in successfully"
	MsgPasswordChanged  = "Password changed successfully"
	MsgUserUpdated      = "User updated successfully"
	MsgUserDeleted      = "User deleted successfully"
	MsgUserFetched      = "User fetched successfully"
	MsgAuditFetched     = "Audit trail fetched successfully"
	MsgUserExists       = "User already exists"
	MsgUserNotFound     = "User not found"
	MsgUserInactive     = "User account is inactive"
	MsgInvalidCreds     = "Invalid credentials"
	MsgPasswordMismatch = "Passwords do not match"
	MsgInvalidOldPass   = "Invalid old password"
	MsgRegisterDenied   = "Registration with this role is not allowed"
	MsgRoleNotFound     = "Role not found"
	MsgUnexpected       = "An unexpected error occurred"
	MsgUpdateFailed     = "Failed to update user"
	MsgDeleteFailed     = "Failed to delete user"
	MsgDeleteNotFound   = "User not found or already deleted"
	MsgAccessDenied     = "Access denied"
	MsgUnauthorized     = "Unauthorized"
	MsgInvalidPayload   = "Invalid payload"
)

// APIResponse is the uniform envelope for every outcome.
type APIResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Success builds a successful envelope. A zero status defaults to 200.
func Success(message string, status int, data any) APIResponse {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse{Success: true, StatusCode: status, Message: message, Data: data}
}

// Error builds a failed envelope. A zero status defaults to 500.
func Error(message string, status int) APIResponse {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return APIResponse{Success: false, StatusCode: status, Message: message}
}

// Internal is the generic envelope for faults whose detail must not leak.
func Internal() APIResponse {
	return Error(MsgUnexpected, http.StatusInternalServerError)
}
