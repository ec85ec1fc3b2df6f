package snapshot

import "github.com/rs/zerolog"

// SyncPolicy writes every snapshot to disk before returning. This is the
// default: the file is at most one failed write behind the in-memory
// state.
type SyncPolicy struct {
	file   *File
	logger zerolog.Logger
}

// NewSyncPolicy creates a synchronous save policy.
func NewSyncPolicy(file *File, logger zerolog.Logger) *SyncPolicy {
	return &SyncPolicy{file: file, logger: logger}
}

// Save writes the snapshot immediately. Write failures are logged and
// otherwise swallowed.
func (p *SyncPolicy) Save(s *Snapshot) {
	if err := p.file.Save(s); err != nil {
		p.logger.Warn().Err(err).Str("path", p.file.Path()).Msg("snapshot save failed")
	}
}

// Close is a no-op; there is never pending work.
func (p *SyncPolicy) Close() {}
