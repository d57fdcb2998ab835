// file: internals/features/classrooms/service/enrollment_service.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "classku_backend/internals/features/classrooms/model"
)

// JoinByCode enrolls a student into the classroom matching code. The lookup,
// duplicate check and insert run in one transaction so concurrent joins can't
// race past the unique (classroom, student) index.
func JoinByCode(db *gorm.DB, studentID uuid.UUID, code string) (*classModel.ClassroomModel, error) {
	code = NormalizeInviteCode(code)
	if !ValidInviteCode(code) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid classroom code format")
	}

	var classroom classModel.ClassroomModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&classroom, "classroom_code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Classroom not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&classModel.ClassroomStudentModel{}).
			Where("classroom_student_classroom_id = ? AND classroom_student_student_id = ?",
				classroom.ClassroomID, studentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Already enrolled in this classroom")
		}

		enrollment := classModel.ClassroomStudentModel{
			ClassroomStudentClassroomID: classroom.ClassroomID,
			ClassroomStudentStudentID:   studentID,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

// RemoveStudent drops exactly one enrollment row. Submissions and doubts the
// student already produced stay untouched.
func RemoveStudent(db *gorm.DB, classroomID, studentID uuid.UUID) error {
	res := db.Where("classroom_student_classroom_id = ? AND classroom_student_student_id = ?",
		classroomID, studentID).
		Delete(&classModel.ClassroomStudentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student is not enrolled in this classroom")
	}
	return nil
}

// IsEnrolled reports whether the student has an enrollment row in the classroom.
func IsEnrolled(db *gorm.DB, classroomID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&classModel.ClassroomStudentModel{}).
		Where("classroom_student_classroom_id = ? AND classroom_student_student_id = ?",
			classroomID, studentID).
		Count(&count).Error
	return count > 0, err
}
