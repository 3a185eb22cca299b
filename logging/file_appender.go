package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// FileAppender writes console formatted lines to a size rotated log file.
type FileAppender struct {
	*ConsoleAppender
	rotator *lumberjack.Logger
}

// NewFileAppender returns an appender writing to path. The file is rotated once it grows past
// 10 MB and the three most recent rotations are kept.
func NewFileAppender(path string) *FileAppender {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
	}
	return &FileAppender{
		ConsoleAppender: NewWriterAppender(rotator),
		rotator:         rotator,
	}
}

// Close closes the underlying file.
func (fa *FileAppender) Close() error {
	return fa.rotator.Close()
}
