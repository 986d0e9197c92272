package searchable

// ResolveFields returns explicit when non-empty, otherwise the model's
// default fields. Both empty is an ErrMissingFields error.
func ResolveFields(explicit []string, model DefaultFielder) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if model != nil {
		if fields := model.SearchableFields(); len(fields) > 0 {
			return fields, nil
		}
	}
	return nil, MissingFieldsError()
}
