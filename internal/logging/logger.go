package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2beens/posecoach/internal/config"
	"github.com/2beens/posecoach/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

type SetupParams struct {
	Config           *config.Config
	SentryDSN        string
	SentryServerName string
	// Stdout receives logs when no log file is configured or when the
	// config asks for both. Defaults to os.Stdout.
	Stdout io.Writer
}

// Setup configures the standard logrus logger used by the service and the
// pose engine packages. It returns the writer logs end up in.
func Setup(params SetupParams) (io.Writer, error) {
	return configure(logrus.StandardLogger(), params)
}

func configure(logger *logrus.Logger, params SetupParams) (io.Writer, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, fmt.Errorf("logging: nil config")
	}
	if params.Stdout == nil {
		params.Stdout = os.Stdout
	}

	if cfg.LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(ParseLevel(cfg.LogLevel))
	logger.AddHook(newFieldsHook(logrus.Fields{
		"service": params.SentryServerName,
		"env":     cfg.Environment,
	}))

	if cfg.SentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Environment:      cfg.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		}); err != nil {
			logger.Errorf("sentry.Init: %s", err)
		} else {
			logger.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			logger.Infoln("sentry set up successfully")
		}
	}

	if cfg.LogsPath == "" {
		logger.SetOutput(params.Stdout)
		logger.Debugln("writing logs only to stdout")
		return params.Stdout, nil
	}

	fileName := cfg.LogsPath
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	maxSize := cfg.LogMaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	rotating := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize, // megabytes
		MaxBackups: cfg.LogMaxBackups,
		LocalTime:  false,
		Compress:   true,
	}

	var out io.Writer = rotating
	if cfg.LogToStdout {
		out = pkg.NewCombinedWriter(params.Stdout, rotating)
	}
	logger.SetOutput(out)
	logger.Debugf("writing logs to [%s], stdout: %t", fileName, cfg.LogToStdout)
	return out, nil
}

// ParseLevel maps a config level to a logrus level. Unknown values fall
// back to info.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// fieldsHook stamps every entry with fixed fields.
type fieldsHook struct {
	fields logrus.Fields
}

func newFieldsHook(fields logrus.Fields) *fieldsHook {
	clean := logrus.Fields{}
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		clean[k] = v
	}
	return &fieldsHook{fields: clean}
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, set := entry.Data[k]; !set {
			entry.Data[k] = v
		}
	}
	return nil
}
