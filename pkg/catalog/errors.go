package catalog

import "errors"

var (
	ErrTemplateNotFound = errors.New("catalog: template not found")
	ErrReadOnlyTemplate = errors.New("catalog: built-in templates are read-only")
	ErrMissingID        = errors.New("catalog: template id is required")
	ErrDuplicateID      = errors.New("catalog: duplicate template id")
	ErrLoadFile         = errors.New("catalog: failed to load templates file")
)
