//go:generate go run go.uber.org/mock/mockgen -source=party_service.go -destination=../mocks/mock_party_service.go -package=mocks
package services

import (
	"iter"
	"log/slog"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
	"github.com/hwannow/PartyUp/runtime"
)

// IPartyService is the party-facing surface exposed to the presentation
// layer. Every operation returns a typed result; presenting errors (or
// confirmation dialogs) is entirely the caller's concern.
type IPartyService interface {
	CreateParty(req domain.PartyCreateRequest, host domain.UserID) (domain.Party, error)
	ListParties(filter domain.ListFilter) iter.Seq[domain.Party]
	JoinParty(partyID domain.PartyID, user domain.UserID, secret string) error
	LeaveParty(partyID domain.PartyID, user domain.UserID) error
	ToggleReady(partyID domain.PartyID, user domain.UserID) (domain.Readiness, error)
	KickMember(partyID domain.PartyID, actor, target domain.UserID) error
	PartyMembers(partyID domain.PartyID) (domain.Party, []domain.Member, error)
}

type PartyService struct {
	registry *runtime.Registry
	log      *slog.Logger
}

func NewPartyService(registry *runtime.Registry, log *slog.Logger) *PartyService {
	return &PartyService{registry: registry, log: log}
}

func (s *PartyService) CreateParty(req domain.PartyCreateRequest, host domain.UserID) (domain.Party, error) {
	return s.registry.Create(req, host)
}

func (s *PartyService) ListParties(filter domain.ListFilter) iter.Seq[domain.Party] {
	return s.registry.List(filter)
}

func (s *PartyService) JoinParty(partyID domain.PartyID, user domain.UserID, secret string) error {
	session, err := s.registry.Session(partyID)
	if err != nil {
		return err
	}
	return session.Join(user, secret)
}

// LeaveParty removes the member. If the host leaves, authority moves to
// the longest-joined member; if the last member leaves, the party is
// dropped from the registry.
func (s *PartyService) LeaveParty(partyID domain.PartyID, user domain.UserID) error {
	session, err := s.registry.Session(partyID)
	if err != nil {
		return err
	}
	closed, err := session.Leave(user)
	if err != nil {
		return err
	}
	if closed {
		s.registry.Remove(partyID)
	}
	return nil
}

func (s *PartyService) ToggleReady(partyID domain.PartyID, user domain.UserID) (domain.Readiness, error) {
	session, err := s.registry.Session(partyID)
	if err != nil {
		return "", err
	}
	return session.ToggleReady(user)
}

func (s *PartyService) KickMember(partyID domain.PartyID, actor, target domain.UserID) error {
	session, err := s.registry.Session(partyID)
	if err != nil {
		return err
	}
	return session.Kick(actor, target)
}

// PartyMembers returns a consistent snapshot of one party.
func (s *PartyService) PartyMembers(partyID domain.PartyID) (domain.Party, []domain.Member, error) {
	session, err := s.registry.Session(partyID)
	if err != nil {
		return domain.Party{}, nil, err
	}
	party, members := session.Snapshot()
	if len(members) == 0 {
		// Closed but not yet removed from the registry.
		return domain.Party{}, nil, errors.ErrPartyNotFound
	}
	return party, members, nil
}
