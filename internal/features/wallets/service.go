// Package wallets — service.go содержит бизнес-логику привязки кошельков.
package wallets

import (
	"context"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// addressPattern — hex-адрес вида 0x + 40 шестнадцатеричных символов.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Service управляет привязкой кошельков.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис кошельков.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Link привязывает адрес к пользователю. Проверки:
//   - адрес синтаксически корректен
//   - адрес не принадлежит другому пользователю
//
// Повторная привязка своего же адреса разрешена (и приводит к
// пересчёту очков этого кошелька у вызывающего).
func (s *Service) Link(ctx context.Context, userIdentifier, address string) error {
	address = strings.ToLower(strings.TrimSpace(address))
	if !addressPattern.MatchString(address) {
		return common.ErrInvalidWalletAddress
	}

	owner, err := s.repo.Owner(ctx, address)
	if err != nil {
		return err
	}
	if owner != "" && owner != userIdentifier {
		return common.ErrWalletAlreadyLinked
	}

	if err := s.repo.Link(ctx, userIdentifier, address); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user":   userIdentifier,
		"wallet": address,
	}).Info("Кошелёк привязан")
	return nil
}

// Addresses возвращает адреса пользователя в порядке привязки.
// Реализует scoring.AddressRegistry.
func (s *Service) Addresses(ctx context.Context, userIdentifier string) ([]string, error) {
	return s.repo.Addresses(ctx, userIdentifier)
}
