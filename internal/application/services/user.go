package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"golden-movie-studio/internal/application/ports"
	domain "golden-movie-studio/internal/domain/user"
	"golden-movie-studio/internal/infrastructure/mq"
	"golden-movie-studio/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	hasher         ports.PasswordHasher
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

// NewUserService wires the registration pipeline. mq may be nil, in which
// case no events are emitted.
func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// RegisterUser expects an already validated registration. The duplicate
// check runs before hashing so a conflict costs no bcrypt work.
func (us *UserService) RegisterUser(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	existing, err := us.userRepository.FetchUserByEmail(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		us.mCounter.WithLabelValues("user_duplicate_total").Inc()
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := us.hasher.Hash(reg.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := us.userRepository.CreateUser(ctx, domain.User{
		Nome:      reg.Nome,
		Sobrenome: reg.Sobrenome,
		Email:     reg.Email,
		Telefone:  reg.Telefone,
		SenhaHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			us.mCounter.WithLabelValues("user_duplicate_total").Inc()
		}
		return nil, err
	}

	us.publish(mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionUserRegistered,
		UserID:  int64(u.ID),
		Payload: user.ToResponseUser(*u),
	})
	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return u, nil
}

// publish never blocks the request: a full buffer drops the event.
func (us *UserService) publish(e mq.Event) {
	if us.mq == nil {
		return
	}

	select {
	case us.mq.GetInputChan() <- e:
	default:
		us.mCounter.WithLabelValues("event_dropped_total").Inc()
	}
}
