package dto

import (
	"github.com/google/uuid"

	"kosan/internal/domains/user/model"
	"kosan/shared"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateUserRequest struct {
	Role     string `json:"role"     validate:"required,oneof=admin owner employee customer"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *CreateUserRequest) ToModel(creator, hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Role:     c.Role,
		Username: c.Username,
		Email:    c.Email,
		Password: hashedPassword,
		Status:   model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

type UpdateUserRequest struct {
	Email  string `db:"email"  json:"email"  validate:"omitempty,email,max=100"`
	Status string `db:"status" json:"status" validate:"omitempty,oneof=active inactive"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Role = model.Role
	r.Username = model.Username
	r.Email = model.Email
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
