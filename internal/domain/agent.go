package domain

import (
	"time"
)

type AgentCategory string

const (
	AgentCategoryInternational AgentCategory = "Yurtdışı"
	AgentCategoryDomestic      AgentCategory = "Yurtiçi"
	AgentCategoryUnknown       AgentCategory = "Unknown"
)

// AgentCategories lista as categorias aceitas no cadastro de agentes
var AgentCategories = []AgentCategory{
	AgentCategoryInternational,
	AgentCategoryDomestic,
}

func (c AgentCategory) IsValid() bool {
	for _, category := range AgentCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Agent struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  AgentCategory `json:"category"`
	Email     *string       `json:"email"`
	Notes     string        `json:"notes"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type AgentFilter struct {
	Category *AgentCategory
}

type UpsertAgentRequest struct {
	ID       string        `json:"-"`
	Name     string        `json:"name"`
	Category AgentCategory `json:"category"`
	Email    *string       `json:"email"`
	Notes    string        `json:"notes"`
	Active   *bool         `json:"active"`
}
