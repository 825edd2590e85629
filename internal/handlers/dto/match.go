package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
)

type ProjectDetails struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Budget       float64    `json:"budget"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Requirements []string   `json:"requirements,omitempty"`
}

type CreateMatchRequest struct {
	CreatorID uuid.UUID       `json:"creator_id" binding:"required"`
	Project   *ProjectDetails `json:"project_details"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MatchResponse struct {
	ID        uuid.UUID          `json:"id"`
	CreatorID uuid.UUID          `json:"creator_id"`
	BrandID   uuid.UUID          `json:"brand_id"`
	Status    models.MatchStatus `json:"status"`
	Project   *ProjectDetails    `json:"project_details,omitempty"`
	Creator   *UserInfo          `json:"creator,omitempty"`
	Brand     *UserInfo          `json:"brand,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewMatchResponse(m *models.Match) MatchResponse {
	resp := MatchResponse{
		ID:        m.ID,
		CreatorID: m.CreatorID,
		BrandID:   m.BrandID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.ProjectTitle != "" || m.ProjectDescription != "" || m.ProjectBudget != 0 {
		resp.Project = &ProjectDetails{
			Title:        m.ProjectTitle,
			Description:  m.ProjectDescription,
			Budget:       m.ProjectBudget,
			Deadline:     m.ProjectDeadline,
			Requirements: SplitRequirements(m.ProjectRequirements),
		}
	}

	if m.Creator.ID != uuid.Nil {
		info := NewUserInfo(&m.Creator)
		resp.Creator = &info
	}
	if m.Brand.ID != uuid.Nil {
		info := NewUserInfo(&m.Brand)
		resp.Brand = &info
	}

	return resp
}
