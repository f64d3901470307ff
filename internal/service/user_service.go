package service

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// UserService 处理家长-学生关系相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// LinkStudent 家长按邮箱绑定学生。重复绑定返回 ErrAlreadyLinked。
func (s *UserService) LinkStudent(parentID, studentEmail string) (*model.User, error) {
	student, err := s.UserRepo.FindByEmailAndRole(studentEmail, model.Student)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	exists, err := s.UserRepo.LinkExists(parentID, student.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyLinked
	}

	if err := s.UserRepo.CreateLink(parentID, student.ID); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *UserService) LinkedStudents(parentID string) ([]model.User, error) {
	return s.UserRepo.FindLinkedStudents(parentID)
}

// UpdateStudentGrade 家长修改名下学生的年级，先校验绑定关系
func (s *UserService) UpdateStudentGrade(parentID, studentID string, grade int) error {
	if grade < 1 || grade > 12 {
		return util.ErrInvalidGrade
	}

	if err := s.VerifyLink(parentID, studentID); err != nil {
		return err
	}

	return s.UserRepo.UpdateGrade(studentID, grade)
}

// VerifyLink 绑定关系校验，目标和统计服务也复用
func (s *UserService) VerifyLink(parentID, studentID string) error {
	linked, err := s.UserRepo.LinkExists(parentID, studentID)
	if err != nil {
		return err
	}
	if !linked {
		return util.ErrNotLinked
	}
	return nil
}
