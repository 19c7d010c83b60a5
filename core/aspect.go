package core

import (
	"go.uber.org/zap"
	"invoice-service/config"
)

// LoggingAspect logs entry, exit and failures of service methods. It is only
// created for the development profile; a nil *LoggingAspect is a no-op.
type LoggingAspect struct {
	logger *zap.Logger
}

func NewLoggingAspect(profile string, logger *zap.Logger) *LoggingAspect {
	if profile != config.ProfileDev {
		return nil
	}
	return &LoggingAspect{logger: logger.Named("aspect")}
}

// Around runs fn as the method named method, logging its arguments, result and error.
func Around[T any](a *LoggingAspect, method string, fn func() (T, error), args ...any) (T, error) {
	if a == nil {
		return fn()
	}

	a.enter(method, args)
	result, err := fn()
	if err != nil {
		a.exception(method, err)
		return result, err
	}
	if ce := a.logger.Check(zap.DebugLevel, "Exit: "+method+"() with result"); ce != nil {
		ce.Write(zap.Any("result", result))
	}
	return result, nil
}

// AroundVoid is Around for methods that only return an error.
func AroundVoid(a *LoggingAspect, method string, fn func() error, args ...any) error {
	if a == nil {
		return fn()
	}

	a.enter(method, args)
	if err := fn(); err != nil {
		a.exception(method, err)
		return err
	}
	a.logger.Debug("Exit: " + method + "()")
	return nil
}

func (a *LoggingAspect) enter(method string, args []any) {
	if ce := a.logger.Check(zap.DebugLevel, "Enter: "+method+"() with argument[s]"); ce != nil {
		ce.Write(zap.Any("arguments", args))
	}
}

func (a *LoggingAspect) exception(method string, err error) {
	a.logger.Error("Exception in "+method+"() with cause", zap.Error(err))
}
