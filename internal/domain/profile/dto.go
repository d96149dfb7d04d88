// internal/domain/profile/dto.go
package profile

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=255"`
	LastName  *string `json:"lastName" binding:"omitempty,max=255"`
	Language  *string `json:"language" binding:"omitempty,oneof=de en"`
}
