package logging

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	FileConfig struct {
		Disabled   bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
		Level      Level  `json:"level" yaml:"level"`
		Path       string `json:"path" yaml:"path" validate:"required_unless=Disabled true"`
		MaxSize    int    `json:"maxSize,omitempty" yaml:"maxSize,omitempty" validate:"gte=0"`
		MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty" validate:"gte=0"`
		Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`

		writer  *lumberjack.Logger
		entries chan *log.Entry
	}
)

const (
	DefaultFilename = "cmdbase.log"
	entryBacklog    = 100
)

var (
	_ factory        = (*FileConfig)(nil)
	_ log.Handler    = (*FileConfig)(nil)
	_ suture.Service = (*FileConfig)(nil)
)

func NewFileConfig(baseDir string) *FileConfig {
	return &FileConfig{
		Level:      Level(log.InfoLevel),
		Path:       filepath.Join(baseDir, DefaultFilename),
		MaxSize:    10, // megabytes
		MaxBackups: 10,
		Compress:   true,
	}
}

func (f *FileConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	if f.Disabled {
		return nil, log.FatalLevel, nil
	}
	f.writer = &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSize,
		MaxBackups: f.MaxBackups,
		LocalTime:  true,
		Compress:   f.Compress,
	}
	f.entries = make(chan *log.Entry, entryBacklog)
	return f, log.Level(f.Level), f
}

// HandleLog queues the entry for Serve. Entries are dropped when the backlog is full.
func (f *FileConfig) HandleLog(entry *log.Entry) error {
	if entry.Level < log.Level(f.Level) {
		return nil
	}
	select {
	case f.entries <- entry:
	default:
	}
	return nil
}

func (f *FileConfig) Serve(ctx context.Context) (err error) {
	defer func() {
		cerr := f.writer.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			stdlog.Printf("error logging to %s: %s", f.Path, err)
		}
	}()
	log.WithField("path", f.Path).Debug("logging.file.started")

	for {
		select {
		case entry := <-f.entries:
			err = WriteEntry(f.writer, entry)
			if err != nil {
				return
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (f *FileConfig) String() string {
	return "log file " + f.Path
}

func WriteEntry(writer io.Writer, entry *log.Entry) (err error) {
	_, err = fmt.Fprintf(writer, "%s [%s] %s", entry.Timestamp.Format(time.RFC3339), entry.Level, entry.Message)
	if err != nil {
		return
	}

	fields := entry.Fields
	for _, name := range fields.Names() {
		_, err = fmt.Fprintf(writer, " %s=%v", name, fields.Get(name))
		if err != nil {
			return
		}
	}

	_, err = writer.Write([]byte("\n"))

	return
}
