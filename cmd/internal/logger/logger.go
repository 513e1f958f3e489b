package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

const defaultServiceName = "legal-timeline-api"

// Logger 는 main, eventbus 처럼 구조화 필드가 필요 없는 곳에서 쓰는 printf 계열 로거다.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields 는 구조화 로그 필드다. request_id, case_id 같은 키는 trace 패키지가 채운다.
type Fields map[string]any

// With 는 f 를 복사한 뒤 extra 로 덮어쓴 새 Fields 를 돌려준다. f 는 바뀌지 않는다.
func (f Fields) With(extra Fields) Fields {
	out := make(Fields, len(f)+len(extra)+1)
	for k, v := range f {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Log 는 전역 로거다. Init 전에는 info 레벨로 동작한다.
var Log Logger = NewLogger("info")

// Init 은 config 의 logging.level 로 전역 로거를 교체한다.
func Init(level string) {
	Log = NewLogger(level)
}

// NewLogger 는 stdout 으로 JSON 한 줄씩 쓰는 gookit/slog 로거를 만든다.
// 알 수 없는 레벨 이름은 info 로 취급한다.
func NewLogger(level string) Logger {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	maxLevel := slog.LevelByName(level)

	levels := make(slog.Levels, 0, len(slog.AllLevels))
	for _, lv := range slog.AllLevels {
		if lv <= maxLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))

	return slog.NewWithHandlers(h)
}

func serviceName() string {
	if sn := os.Getenv("SERVICE_NAME"); sn != "" {
		return sn
	}
	return defaultServiceName
}

func logWithFields(level slog.Level, msg string, fields Fields) {
	fields = fields.With(nil)
	if _, ok := fields["service_name"]; !ok {
		fields["service_name"] = serviceName()
	}

	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Log(level, msg)
		return
	}
	// 테스트에서 Log 를 교체한 경우 필드 없이 메시지만 남긴다.
	switch level {
	case slog.DebugLevel:
		Log.Debug(msg)
	case slog.WarnLevel:
		Log.Warn(msg)
	case slog.ErrorLevel:
		Log.Error(msg)
	default:
		Log.Info(msg)
	}
}

func DebugWithFields(msg string, fields Fields) { logWithFields(slog.DebugLevel, msg, fields) }
func InfoWithFields(msg string, fields Fields)  { logWithFields(slog.InfoLevel, msg, fields) }
func WarnWithFields(msg string, fields Fields)  { logWithFields(slog.WarnLevel, msg, fields) }
func ErrorWithFields(msg string, fields Fields) { logWithFields(slog.ErrorLevel, msg, fields) }
