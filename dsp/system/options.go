package system

import (
	"github.com/sirupsen/logrus"
)

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger. Every entry carries a "system" field with the
// System ID.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}
