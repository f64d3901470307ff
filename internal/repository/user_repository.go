package repository

import (
	"edumate_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmailAndRole(email string, role model.UserRole) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? AND role = ?", email, role).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateGrade(studentID string, grade int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ? AND role = ?", studentID, model.Student).
		Update("grade", grade).
		Error
}

// CreateLink 建立家长-学生绑定
func (r *UserRepository) CreateLink(parentID, studentID string) error {
	return r.DB.Create(&model.ParentStudentLink{
		ParentID:  parentID,
		StudentID: studentID,
	}).Error
}

func (r *UserRepository) LinkExists(parentID, studentID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ParentStudentLink{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&count).Error
	return count > 0, err
}

// FindLinkedStudents 家长名下的所有学生
func (r *UserRepository) FindLinkedStudents(parentID string) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Joins("JOIN parent_student_links ON parent_student_links.student_id = users.id").
		Where("parent_student_links.parent_id = ? AND parent_student_links.deleted_at IS NULL", parentID).
		Find(&students).Error
	return students, err
}
