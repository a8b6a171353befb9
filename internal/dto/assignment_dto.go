package dto

// AssignBranchesRequest declares the desired full set of branches for
// an exam; the service reconciles by set difference.
type AssignBranchesRequest struct {
	ExamID    uint   `json:"examId" binding:"required"`
	BranchIDs []uint `json:"branchIds" binding:"required"`
}

// AssignStudentsRequest is the direct, branchless counterpart.
type AssignStudentsRequest struct {
	ExamID     uint   `json:"examId" binding:"required"`
	StudentIDs []uint `json:"studentIds" binding:"required"`
}

type AssignedBranchesResponse struct {
	AssignedBranchIDs []uint `json:"assignedBranchIds"`
}

type AssignedStudentsResponse struct {
	AssignedStudentIDs []uint `json:"assignedStudentIds"`
}
