package journal

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/service"
)

// JournalService owns the journal connection for the lifetime of the hub
// A nil Config or an empty DSN leaves the service idle
type JournalService struct {
	cfg     *Config
	log     zerolog.Logger
	journal *Journal
}

// NewService creates an idle journal service
func NewService() *JournalService {
	return &JournalService{log: zerolog.Nop()}
}

// Name implements Service
func (s *JournalService) Name() string {
	return "journal"
}

// Dependencies implements Service
func (s *JournalService) Dependencies() []string {
	return nil
}

// Init implements Service
// Accepts a *Config and a zerolog.Logger among args
func (s *JournalService) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Config:
			s.cfg = v
		case zerolog.Logger:
			s.log = v
		}
	}
	return nil
}

// Start implements Service, opening the backend when configured
func (s *JournalService) Start() error {
	if s.cfg == nil || s.cfg.DSN == "" || s.journal != nil {
		return nil
	}
	j, err := Open(*s.cfg, s.log)
	if err != nil {
		return err
	}
	s.journal = j
	return nil
}

// Stop implements Service
func (s *JournalService) Stop() error {
	if s.journal == nil {
		return nil
	}
	err := s.journal.Close()
	s.journal = nil
	return err
}

// Contribute implements service.ResourceContributor
func (s *JournalService) Contribute(publish service.ResourcePublisher) {
	if s.journal != nil {
		publish(&engine.JournalResource{Recorder: s.journal})
	}
}

// Journal returns the open journal, nil when idle
func (s *JournalService) Journal() *Journal {
	return s.journal
}
