package dto

// UpdateProfileRequest carries the editable profile fields. Omitted
// fields are left unchanged; an empty avatar_url or bio clears it.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
}

// UpdateUserStatusRequest is the admin payload for banning or restoring
// an account
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BANNED"`
}
