package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/sl"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

type MembershipRepository interface {
	FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringMembership, error)
}

type SchedulerService struct {
	repo MembershipRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo MembershipRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindExpiringMembershipsDueTomorrow раз в двенадцать часов ищет
// абонементы, истекающие завтра, и публикует уведомления в очередь.
func (s *SchedulerService) FindExpiringMembershipsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringMemberships(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringMemberships(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find memberships expiring tomorrow")
	memberships, err := s.repo.FindMembershipsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find memberships", sl.Err(err))
		return
	}
	if len(memberships) == 0 {
		s.log.Info("no expiring memberships found")
		return
	}
	s.log.Info("found expiring memberships", "count", len(memberships))
	for _, membership := range memberships {
		err = rabbitmq.PublishMessage(channel, "notifications", "expiring", membership)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
