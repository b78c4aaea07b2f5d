package registry

import "errors"

var (
	ErrNameParamIsEmpty      = errors.New("name parameter is empty")
	ErrDefinitionParamIsNil  = errors.New("definition parameter is nil")
	ErrDefinitionTypeIsNil   = errors.New("definition type is nil")
	ErrInstanceParamIsNil    = errors.New("instance parameter is nil")
	ErrComponentTypeRejected = errors.New("component type is not supported")
)
