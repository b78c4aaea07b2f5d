package iocboot

import "errors"

var (
	ErrFactoryParamIsNil = errors.New("factory parameter is nil")
	ErrContextParamIsNil = errors.New("context parameter is nil")
)
