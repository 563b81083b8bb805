package service

import (
	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/util/random"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{DB: database.GetDB()}
}

// UserDTO is the serialized user shape: the id, superuser flag and
// confirmation code never leave the service layer.
type UserDTO struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      model.Role `json:"role"`
}

func UserDTOOf(u *model.User) UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// UserInput is the admin-create payload.
type UserInput struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      model.Role `json:"role"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Username  *string     `json:"username"`
	Email     *string     `json:"email"`
	FirstName *string     `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Bio       *string     `json:"bio"`
	Role      *model.Role `json:"role"`
}

func (s *UserService) List(search string, page, pageSize int) ([]UserDTO, int64, error) {
	query := s.DB.Model(&model.User{})
	if search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, UserDTOOf(&users[i]))
	}
	return out, count, nil
}

func (s *UserService) GetByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := s.DB.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "user"}
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(id int) (*model.User, error) {
	user := &model.User{}
	err := s.DB.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "user"}
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Create makes a user on behalf of an admin. The record gets a confirmation
// code so the new account can still complete the token exchange, but no mail
// is sent from this path.
func (s *UserService) Create(in UserInput) (*model.User, error) {
	fields := entity.FieldErrors{}
	validateUsername(fields, in.Username)
	validateEmail(fields, in.Email)

	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		fields.Add("role", "Not a valid choice.")
	}

	if fields.Empty() {
		var count int64
		s.DB.Model(&model.User{}).Where("username = ?", in.Username).Count(&count)
		if count > 0 {
			fields.Add("username", "A user with that username already exists.")
		}
		count = 0
		s.DB.Model(&model.User{}).Where("email = ?", in.Email).Count(&count)
		if count > 0 {
			fields.Add("email", "A user with that email already exists.")
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	user := &model.User{
		Username:         in.Username,
		Email:            in.Email,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Bio:              in.Bio,
		Role:             role,
		ConfirmationCode: random.Seq(confirmationCodeLength),
	}
	if err := s.DB.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "username"}
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. When allowRole is false (the self-service
// path) the role field in the patch is ignored, closing the old
// self-promotion gap.
func (s *UserService) Update(user *model.User, patch UserPatch, allowRole bool) (*model.User, error) {
	fields := entity.FieldErrors{}

	if patch.Username != nil && *patch.Username != user.Username {
		validateUsername(fields, *patch.Username)
		var count int64
		s.DB.Model(&model.User{}).Where("username = ?", *patch.Username).Count(&count)
		if count > 0 {
			fields.Add("username", "A user with that username already exists.")
		}
	}
	if patch.Email != nil && *patch.Email != user.Email {
		validateEmail(fields, *patch.Email)
		var count int64
		s.DB.Model(&model.User{}).Where("email = ?", *patch.Email).Count(&count)
		if count > 0 {
			fields.Add("email", "A user with that email already exists.")
		}
	}
	if allowRole && patch.Role != nil && !patch.Role.Valid() {
		fields.Add("role", "Not a valid choice.")
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	updates := map[string]any{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if allowRole && patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "username"}
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(user *model.User) error {
	return s.DB.Delete(user).Error
}
