package domain

import "time"

// Employee is a persisted employee record.
type Employee struct {
	ID             int64
	FirstName      string
	MiddleName     *string
	LastName       string
	SecondLastName *string
	Age            *int
	Sex            *string
	BirthDate      *Date
	Position       *string
	CreatedAt      time.Time
	Active         bool
}

// EmployeeDraft is one element of a creation request. Pointer fields are nil
// when the key is absent or null.
type EmployeeDraft struct {
	FirstName      *string `json:"firstName"`
	MiddleName     *string `json:"middleName"`
	LastName       *string `json:"lastName"`
	SecondLastName *string `json:"secondLastName"`
	Age            *int    `json:"age"`
	Sex            *string `json:"sex"`
	BirthDate      *Date   `json:"birthDate"`
	Position       *string `json:"position"`
	Active         *bool   `json:"active"`
}

// EmployeePatch is an update request. Absent keys leave the stored value
// alone; explicit nulls clear nullable fields.
type EmployeePatch struct {
	FirstName      Optional[string] `json:"firstName"`
	MiddleName     Optional[string] `json:"middleName"`
	LastName       Optional[string] `json:"lastName"`
	SecondLastName Optional[string] `json:"secondLastName"`
	Age            Optional[int]    `json:"age"`
	Sex            Optional[string] `json:"sex"`
	BirthDate      Optional[Date]   `json:"birthDate"`
	Position       Optional[string] `json:"position"`
	Active         Optional[bool]   `json:"active"`
}

// NewEmployee builds a normalized record from a validated draft. The id is
// left for the store to assign.
func NewEmployee(d *EmployeeDraft, createdAt time.Time) *Employee {
	e := &Employee{
		MiddleName:     d.MiddleName,
		SecondLastName: d.SecondLastName,
		Age:            d.Age,
		Sex:            d.Sex,
		BirthDate:      d.BirthDate,
		Position:       d.Position,
		CreatedAt:      createdAt.UTC(),
		Active:         true,
	}
	if d.FirstName != nil {
		e.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		e.LastName = *d.LastName
	}
	if d.Active != nil {
		e.Active = *d.Active
	}
	Normalize(e)
	return e
}

// Clone returns a copy of e that shares no pointers with it.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	c := *e
	c.MiddleName = clonePtr(e.MiddleName)
	c.SecondLastName = clonePtr(e.SecondLastName)
	c.Age = clonePtr(e.Age)
	c.Sex = clonePtr(e.Sex)
	c.BirthDate = clonePtr(e.BirthDate)
	c.Position = clonePtr(e.Position)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
