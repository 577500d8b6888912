package api

import (
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// EmployeeResponse is the wire form of an employee. Absent optional fields
// render as null; birthDate renders as dd-MM-yyyy.
type EmployeeResponse struct {
	ID             int64        `json:"id"`
	FirstName      string       `json:"firstName"`
	MiddleName     *string      `json:"middleName"`
	LastName       string       `json:"lastName"`
	SecondLastName *string      `json:"secondLastName"`
	Age            *int         `json:"age"`
	Sex            *string      `json:"sex"`
	BirthDate      *domain.Date `json:"birthDate"`
	Position       *string      `json:"position"`
	CreatedAt      time.Time    `json:"createdAt"`
	Active         bool         `json:"active"`
}

// TokenResponse is returned by POST /auth/token.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	TokenType        string `json:"tokenType"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
	Scope            string `json:"scope"`
}

func employeeToResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		FirstName:      e.FirstName,
		MiddleName:     e.MiddleName,
		LastName:       e.LastName,
		SecondLastName: e.SecondLastName,
		Age:            e.Age,
		Sex:            e.Sex,
		BirthDate:      e.BirthDate,
		Position:       e.Position,
		CreatedAt:      e.CreatedAt.UTC(),
		Active:         e.Active,
	}
}

// employeesToResponses never returns nil, so an empty list renders as [].
func employeesToResponses(employees []*domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employeeToResponse(e))
	}
	return responses
}

func grantToResponse(g *auth.TokenGrant) TokenResponse {
	return TokenResponse{
		AccessToken:      g.AccessToken,
		TokenType:        g.TokenType,
		ExpiresInMinutes: g.ExpiresInMinutes,
		Scope:            g.Scope,
	}
}
