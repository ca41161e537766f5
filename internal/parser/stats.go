package parser

import (
	"sync"

	"go.uber.org/zap"
)

// Extraction methods recorded per file.
const (
	MethodNative    = "native"
	MethodFallback  = "fallback"
	MethodAugmented = "augmented"
)

// FileDetail records how one file was processed.
type FileDetail struct {
	Filename   string `json:"filename"`
	Method     string `json:"method"`
	Characters int    `json:"characters"`
}

// Stats accumulates extraction statistics across a batch. It is supplied by
// the caller rather than held as process-wide state, and is safe for
// concurrent use since documents are processed in parallel.
type Stats struct {
	mu          sync.Mutex
	files       int
	augmented   int
	characters  int
	fileDetails []FileDetail
}

// NewStats creates an empty accumulator.
func NewStats() *Stats {
	return &Stats{}
}

// Record notes how a file's text was obtained. Safe to call on a nil receiver.
func (s *Stats) Record(filename, method string, characters int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files++
	s.characters += characters
	s.fileDetails = append(s.fileDetails, FileDetail{
		Filename:   filename,
		Method:     method,
		Characters: characters,
	})
}

// MarkAugmented counts a file whose record was touched by the augmentation
// provider. Safe to call on a nil receiver.
func (s *Stats) MarkAugmented(filename string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.augmented++
	for i := range s.fileDetails {
		if s.fileDetails[i].Filename == filename {
			s.fileDetails[i].Method = MethodAugmented
		}
	}
}

// Snapshot returns a copy of the accumulated details.
func (s *Stats) Snapshot() (files, augmented, characters int, details []FileDetail) {
	if s == nil {
		return 0, 0, 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	details = make([]FileDetail, len(s.fileDetails))
	copy(details, s.fileDetails)
	return s.files, s.augmented, s.characters, details
}

// LogSummary dumps the accumulated statistics through the global logger.
func (s *Stats) LogSummary() {
	files, augmented, characters, details := s.Snapshot()
	if files == 0 {
		return
	}

	zap.L().Info("extraction summary",
		zap.Int("files_processed", files),
		zap.Int("files_augmented", augmented),
		zap.Int("characters_extracted", characters),
	)
	for _, d := range details {
		zap.L().Info("file detail",
			zap.String("file", d.Filename),
			zap.String("method", d.Method),
			zap.Int("characters", d.Characters),
		)
	}
}
