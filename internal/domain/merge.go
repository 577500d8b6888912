package domain

// Apply returns a normalized copy of e with every present field of p merged
// in. ID and CreatedAt are never changed and e itself is not modified. A nil
// patch returns an unmodified copy.
//
// Null on a required field is treated as absent here; ValidatePatch rejects
// such patches before they are applied.
func (e *Employee) Apply(p *EmployeePatch) *Employee {
	merged := e.Clone()
	if p == nil {
		return merged
	}

	mergeValue(&merged.FirstName, p.FirstName)
	mergeNullable(&merged.MiddleName, p.MiddleName)
	mergeValue(&merged.LastName, p.LastName)
	mergeNullable(&merged.SecondLastName, p.SecondLastName)
	mergeNullable(&merged.Age, p.Age)
	mergeNullable(&merged.Sex, p.Sex)
	mergeNullable(&merged.BirthDate, p.BirthDate)
	mergeNullable(&merged.Position, p.Position)
	mergeValue(&merged.Active, p.Active)

	Normalize(merged)
	return merged
}

func mergeValue[T any](dst *T, o Optional[T]) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}

func mergeNullable[T any](dst **T, o Optional[T]) {
	if !o.Present() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v := o.value
	*dst = &v
}
