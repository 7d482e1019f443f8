package logger

import "strings"

// Level is the minimum severity a logger or writer lets through.
type Level uint32

// Levels in increasing severity. LevelOff silences a logger.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are the tags written in log entries, indexed by level.
var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

var levelsByName = map[string]Level{
	"trace":    LevelTrace,
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"critical": LevelCritical,
	"off":      LevelOff,
}

// LevelFromString parses a level by its name or its tag, ignoring case.
// Unknown input yields LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	name := strings.ToLower(s)
	if level, ok := levelsByName[name]; ok {
		return level, true
	}
	for level, tag := range levelTags {
		if strings.EqualFold(tag, name) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// String returns the level's tag, or "OFF" for anything past LevelCritical.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levelTags[l]
}
