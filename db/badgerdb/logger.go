package badgerdb

import (
	"fmt"
	"strings"

	"github.com/celer-network/go-animaverse/log"
)

// extendedLog adapts the module logger to badger.Logger.
type extendedLog struct {
	*log.Logger
}

func trim(format string, v ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, v...), "\n")
}

func (l *extendedLog) Errorf(format string, v ...interface{}) {
	l.Error().Msg(trim(format, v...))
}

func (l *extendedLog) Warningf(format string, v ...interface{}) {
	l.Warn().Msg(trim(format, v...))
}

func (l *extendedLog) Infof(format string, v ...interface{}) {
	l.Info().Msg(trim(format, v...))
}

func (l *extendedLog) Debugf(format string, v ...interface{}) {
	l.Debug().Msg(trim(format, v...))
}
