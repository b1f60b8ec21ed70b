package core

// Logger interface for raytracer logging, satisfied by *zap.SugaredLogger
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}
