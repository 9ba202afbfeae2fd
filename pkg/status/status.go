// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome is the result of one copy or move attempt
type Outcome int

const (
	NotAttempted  Outcome = iota // Step was not run
	Done                         // Step completed
	SkippedExists                // Destination already existed, nothing written
	Failed                       // Step returned an error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case SkippedExists:
		return "skipped-exists"
	case Failed:
		return "failed"
	default:
		return "not-attempted"
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "done":
		*o = Done
	case "skipped-exists":
		*o = SkippedExists
	case "failed":
		*o = Failed
	case "not-attempted":
		*o = NotAttempted
	default:
		return errors.Errorf("unknown outcome %q", string(text))
	}
	return nil
}

// 📄 EntryInfo records what happened to one mapping row
type EntryInfo struct {
	Old     string  `json:"old" yaml:"old"`
	New     string  `json:"new" yaml:"new"`
	Ext     string  `json:"ext" yaml:"ext"`
	Copy    Outcome `json:"copy" yaml:"copy"`
	Move    Outcome `json:"move" yaml:"move"`
	Missing bool    `json:"missing,omitempty" yaml:"missing,omitempty"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts entry outcomes
type Summary struct {
	Total       int `json:"total" yaml:"total"`
	Copied      int `json:"copied" yaml:"copied"`
	Archived    int `json:"archived" yaml:"archived"`
	SkippedCopy int `json:"skipped_copy" yaml:"skipped_copy"`
	SkippedMove int `json:"skipped_move" yaml:"skipped_move"`
	Missing     int `json:"missing" yaml:"missing"`
	Failed      int `json:"failed" yaml:"failed"`
}

// 📈 Tracker records entry outcomes and reports progress
type Tracker struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu      sync.Mutex
	entries []EntryInfo

	total     int
	processed int
}

// 🏭 NewTracker creates a tracker that logs through logger
func NewTracker(logger *zerolog.Logger) *Tracker {
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
	}
}

// TrackEntry records info and logs a one-line description of it
func (t *Tracker) TrackEntry(ctx context.Context, info EntryInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, info)

	ev := t.logger.Info()
	if info.Copy == Failed || info.Move == Failed {
		ev = t.logger.Error()
	}
	if info.Error != "" {
		ev = ev.Str("error", info.Error)
	}
	ev.Str("old", info.Old).
		Str("new", info.New).
		Str("copy", info.Copy.String()).
		Str("move", info.Move.String()).
		Bool("missing", info.Missing).
		Msg(t.formatter.FormatEntry(info))
}

// Entries returns the tracked entries in the order they were recorded
func (t *Tracker) Entries() []EntryInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]EntryInfo, len(t.entries))
	copy(out, t.entries)
	return out
}

// Summary counts the tracked outcomes
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{Total: len(t.entries)}
	for _, e := range t.entries {
		if e.Missing {
			s.Missing++
			continue
		}
		switch e.Copy {
		case Done:
			s.Copied++
		case SkippedExists:
			s.SkippedCopy++
		}
		switch e.Move {
		case Done:
			s.Archived++
		case SkippedExists:
			s.SkippedMove++
		}
		if e.Copy == Failed || e.Move == Failed {
			s.Failed++
		}
	}
	return s
}

func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.logger.Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

func (t *Tracker) UpdateProgress(ctx context.Context, processed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed = processed
	t.logger.Debug().
		Int("processed", processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(processed, t.total))
}

func (t *Tracker) FinishOperation(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Debug().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(t.processed, t.total))
}
