package common

import "fmt"

type LogLevel int32

const (
	DEBUG_INFO_DETAIL LogLevel = 1
	DEBUG_INFO                 = 2
	RDB_OP_FUNC_CALL           = 4
	DEBUGGING                  = 8
	INFO                       = 16
	WARN                       = 32
	ERROR                      = 64
	FATAL                      = 128
)

var LogLevelSetting LogLevel = WARN | ERROR | FATAL

func ShPrintf(logLevel LogLevel, fmtStl string, a ...interface{}) {
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStl, a...)
	}
}

// ParseLogLevel converts names used in config files to a LogLevel bit set.
// unknown names are ignored
func ParseLogLevel(names []string) LogLevel {
	ret := LogLevel(0)
	for _, name := range names {
		switch name {
		case "debug_detail":
			ret |= DEBUG_INFO_DETAIL
		case "debug":
			ret |= DEBUG_INFO
		case "func_call":
			ret |= RDB_OP_FUNC_CALL
		case "debugging":
			ret |= DEBUGGING
		case "info":
			ret |= INFO
		case "warn":
			ret |= WARN
		case "error":
			ret |= ERROR
		case "fatal":
			ret |= FATAL
		}
	}
	return ret
}
