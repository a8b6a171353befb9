package service

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

// AssignmentService reconciles exam visibility. Callers declare the
// desired full set of branches or students; the service computes the
// additions and removals and applies both sides in one transaction.
type AssignmentService interface {
	AssignBranches(req dto.AssignBranchesRequest) error
	AssignStudents(req dto.AssignStudentsRequest) error
	AssignedBranches(examID uint) (*dto.AssignedBranchesResponse, error)
	AssignedStudents(examID uint) (*dto.AssignedStudentsResponse, error)
}

type assignmentService struct {
	db             *gorm.DB
	examRepo       repository.ExamRepository
	assignmentRepo repository.AssignmentRepository
}

func NewAssignmentService(
	db *gorm.DB,
	examRepo repository.ExamRepository,
	assignmentRepo repository.AssignmentRepository,
) AssignmentService {
	return &assignmentService{
		db:             db,
		examRepo:       examRepo,
		assignmentRepo: assignmentRepo,
	}
}

func diffSets(current, desired []uint) (added, removed []uint) {
	currentSet := make(map[uint]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[uint]bool, len(desired))
	for _, id := range desired {
		if desiredSet[id] {
			continue
		}
		desiredSet[id] = true
		if !currentSet[id] {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if !desiredSet[id] {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// AssignBranches fans each added branch out to its current students as
// branch-provenance assignment rows, re-enabling any it previously
// disabled. Removing a branch disables the branch row and only the
// student rows that branch created; direct assignments survive. The
// current-set and membership reads run inside the same transaction as
// the writes.
func (s *assignmentService) AssignBranches(req dto.AssignBranchesRequest) error {
	if _, err := s.examRepo.FindByID(req.ExamID); err != nil {
		return ErrNotFound
	}

	var added, removed []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current []uint
		err := tx.Model(&model.ExamBranchAssignment{}).
			Where("exam_id = ? AND is_enabled = true", req.ExamID).
			Pluck("branch_id", &current).Error
		if err != nil {
			return err
		}
		added, removed = diffSets(current, req.BranchIDs)

		now := time.Now()
		for _, branchID := range added {
			branchRow := model.ExamBranchAssignment{
				ExamID:    req.ExamID,
				BranchID:  branchID,
				IsEnabled: true,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "exam_id"}, {Name: "branch_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"is_enabled": true, "updated_at": now}),
			}).Create(&branchRow).Error
			if err != nil {
				return err
			}

			studentIDs, err := branchStudentIDs(tx, branchID)
			if err != nil {
				return err
			}
			for _, studentID := range studentIDs {
				row := model.ExamStudentAssignment{
					ExamID:       req.ExamID,
					StudentID:    studentID,
					AssignedFrom: model.AssignedFromBranch,
					IsEnabled:    true,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
					DoUpdates: clause.Assignments(map[string]interface{}{
						"is_enabled":  true,
						"disabled_at": nil,
						"updated_at":  now,
					}),
				}).Create(&row).Error
				if err != nil {
					return err
				}
			}
		}

		for _, branchID := range removed {
			err := tx.Model(&model.ExamBranchAssignment{}).
				Where("exam_id = ? AND branch_id = ?", req.ExamID, branchID).
				Updates(map[string]interface{}{"is_enabled": false, "updated_at": now}).Error
			if err != nil {
				return err
			}

			studentIDs, err := branchStudentIDs(tx, branchID)
			if err != nil {
				return err
			}
			if len(studentIDs) == 0 {
				continue
			}
			err = tx.Model(&model.ExamStudentAssignment{}).
				Where("exam_id = ? AND student_id IN ? AND assigned_from = ?",
					req.ExamID, studentIDs, model.AssignedFromBranch).
				Updates(map[string]interface{}{
					"is_enabled":  false,
					"disabled_at": now,
					"updated_at":  now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("examID", req.ExamID).Ints("added", toInts(added)).Ints("removed", toInts(removed)).
		Msg("Branch assignments reconciled")
	return nil
}

// AssignStudents reconciles direct assignments only; rows fanned out
// by a branch are not part of this set and are never disabled here.
func (s *assignmentService) AssignStudents(req dto.AssignStudentsRequest) error {
	if _, err := s.examRepo.FindByID(req.ExamID); err != nil {
		return ErrNotFound
	}

	var added, removed []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := directStudentIDs(tx, req.ExamID)
		if err != nil {
			return err
		}
		added, removed = diffSets(current, req.StudentIDs)

		now := time.Now()
		for _, studentID := range added {
			row := model.ExamStudentAssignment{
				ExamID:       req.ExamID,
				StudentID:    studentID,
				AssignedFrom: model.AssignedFromDirect,
				IsEnabled:    true,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"assigned_from": model.AssignedFromDirect,
					"is_enabled":    true,
					"disabled_at":   nil,
					"updated_at":    now,
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		if len(removed) > 0 {
			err := tx.Model(&model.ExamStudentAssignment{}).
				Where("exam_id = ? AND student_id IN ? AND assigned_from = ?",
					req.ExamID, removed, model.AssignedFromDirect).
				Updates(map[string]interface{}{
					"is_enabled":  false,
					"disabled_at": now,
					"updated_at":  now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("examID", req.ExamID).Ints("added", toInts(added)).Ints("removed", toInts(removed)).
		Msg("Student assignments reconciled")
	return nil
}

func directStudentIDs(tx *gorm.DB, examID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.ExamStudentAssignment{}).
		Where("exam_id = ? AND assigned_from = ? AND is_enabled = ?", examID, model.AssignedFromDirect, true).
		Pluck("student_id", &ids).Error
	return ids, err
}

func branchStudentIDs(tx *gorm.DB, branchID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.Student{}).Where("branch_id = ?", branchID).Pluck("id", &ids).Error
	return ids, err
}

func (s *assignmentService) AssignedBranches(examID uint) (*dto.AssignedBranchesResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, ErrNotFound
	}
	ids, err := s.assignmentRepo.BranchIDsForExam(examID, true)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return &dto.AssignedBranchesResponse{AssignedBranchIDs: ids}, nil
}

func (s *assignmentService) AssignedStudents(examID uint) (*dto.AssignedStudentsResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, ErrNotFound
	}
	ids, err := s.assignmentRepo.StudentIDsForExam(examID, true)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return &dto.AssignedStudentsResponse{AssignedStudentIDs: ids}, nil
}

func toInts(ids []uint) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
