package logs

import (
	"context"
	"log/slog"
	"time"

	"github.com/reusee/pf/modes"
	slogmulti "github.com/samber/slog-multi"
)

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	textHandler := slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)

	var handlers []slog.Handler
	if mode == modes.ModeProduction && underJournal() {
		journalHandler, err := newJournalHandler()
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = textHandler.Handle(context.Background(), record)
			handlers = append(handlers, textHandler)
		} else {
			handlers = append(handlers, journalHandler)
		}
	} else {
		handlers = append(handlers, textHandler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}
