package publish

// IdentityMap carries draft id to published id assignments for one publish
// level. It is filled while a level is planned and handed to the next level
// so child rows reference published parents, never draft ones.
type IdentityMap map[string]string

// Resolve returns the published id for a draft id. Kinds that share ids
// between the two states are never in the map, their ids pass through
// untouched.
func (m IdentityMap) Resolve(draftID string) string {
	if id, ok := m[draftID]; ok {
		return id
	}
	return draftID
}

// ResolveRef resolves a nullable parent reference.
func (m IdentityMap) ResolveRef(draftID *string) *string {
	if draftID == nil {
		return nil
	}
	id := m.Resolve(*draftID)
	return &id
}
