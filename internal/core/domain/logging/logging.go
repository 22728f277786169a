package logging

import "context"

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs an unexpected error with a uniform message.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	allEntries := make([]LogEntry, 0, len(entries)+1)
	allEntries = append(allEntries, Entry("err", err))
	allEntries = append(allEntries, entries...)
	log.Error(ctx, "Unexpected error.", allEntries...)
}
