package kernel

// TenantID scopes every operation to one company (empresa). It is threaded
// explicitly through commands, queries, and repositories rather than living in
// ambient state, so no operation can touch another tenant's orders by
// accident.
type TenantID struct {
	UUID
}

// NewTenantID generates a new tenant identifier.
func NewTenantID() TenantID {
	return TenantID{UUID: NewUUID()}
}

// TenantIDFromString parses a tenant identifier from its string form.
func TenantIDFromString(s string) (TenantID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return TenantID{}, err
	}
	return TenantID{UUID: id}, nil
}

// TenantIDFromUUID wraps an already-validated UUID as a tenant identifier.
func TenantIDFromUUID(id UUID) TenantID {
	return TenantID{UUID: id}
}
