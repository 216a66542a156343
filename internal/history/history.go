// Package history keeps the persisted draw history, newest first.
package history

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
)

// Log is the append-only, reverse-chronological draw history. It survives a
// return to the menu and a process restart; only an explicit clear empties it.
type Log struct {
	kv    store.KV
	log   *slog.Logger
	items []model.HistoryItem
}

// New loads the history from kv. A read failure degrades to an empty log.
func New(kv store.KV, log *slog.Logger) *Log {
	l := &Log{kv: kv, log: log}

	raw, ok, err := kv.Get(model.KeyHistory)
	if err != nil {
		log.Warn("loading history failed, starting empty", "error", err)
		return l
	}
	if ok {
		if err := json.Unmarshal(raw, &l.items); err != nil {
			log.Warn("history record is malformed, starting empty", "error", err)
			l.items = nil
		}
	}
	return l
}

// Append records a drawn question at the head of the log.
func (l *Log) Append(question, category string) {
	item := model.HistoryItem{Question: question, Category: category, Time: time.Now()}
	l.items = append([]model.HistoryItem{item}, l.items...)
	l.persist()
}

// Items returns the history, newest first.
func (l *Log) Items() []model.HistoryItem {
	return append([]model.HistoryItem(nil), l.items...)
}

// Len returns the number of recorded draws.
func (l *Log) Len() int {
	return len(l.items)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.items = nil
	l.persist()
}

func (l *Log) persist() {
	raw, err := json.Marshal(l.items)
	if err != nil {
		l.log.Warn("marshaling history failed", "error", err)
		return
	}
	if err := l.kv.Set(model.KeyHistory, raw); err != nil {
		l.log.Warn("persisting history failed", "error", err)
	}
}
