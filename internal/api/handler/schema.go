package handler

type adminSignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max_bytes=72"`
	Name     string `json:"name"     validate:"required"`
	Age      string `json:"age"      validate:"required,nonnegative_numeric"`
	Address  string `json:"address"  validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max_bytes=72"`
	RoleName string `json:"roleName" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Age      string `json:"age"      validate:"required,nonnegative_numeric"`
	Address  string `json:"address"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword"     validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,max_bytes=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// updateUserRequest is a partial update: absent fields stay untouched.
type updateUserRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,min=1"`
	Age     *string `json:"age,omitempty"     validate:"omitempty,nonnegative_numeric"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=1"`
}

// envelope documents the response shape for swagger.
type envelope struct {
	Success    bool   `json:"success"    example:"true"`
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message"    example:"User logged in successfully"`
	Data       any    `json:"data,omitempty"`
}
