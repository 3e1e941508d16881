package tags

import (
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

type loggerBox struct {
	hclog.Logger
}

var pkgLogger atomic.Pointer[loggerBox]

func init() {
	pkgLogger.Store(&loggerBox{hclog.NewNullLogger()})
}

// SetLogger replaces the logger used by the package.
// Passing nil silences logging again.
func SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	pkgLogger.Store(&loggerBox{l.Named("tags")})
}

func logger() hclog.Logger {
	return pkgLogger.Load().Logger
}
