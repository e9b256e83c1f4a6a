package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/identity"
	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/pkg/logger"
)

type AuthService struct {
	confirmer identity.Confirmer
}

func NewAuthService(confirmer identity.Confirmer) *AuthService {
	return &AuthService{confirmer: confirmer}
}

func (s *AuthService) ConfirmSignUp(ctx context.Context, in *model.ConfirmSignUp) *Error {
	l := logger.FromContext(ctx)
	l.Info("confirming sign-up", zap.String("username", in.Username))

	err := s.confirmer.ConfirmSignUp(ctx, in.Username, in.Code)
	if errors.Is(err, identity.ErrInvalidConfirmation) {
		l.Warn("sign-up confirmation rejected", zap.String("username", in.Username), zap.Error(err))
		return NewError(ErrorCodeInvalidBody, "invalid confirmation code").WithCause(err)
	}
	if err != nil {
		l.Error("failed to confirm sign-up", zap.String("username", in.Username), zap.Error(err))
		return NewError(ErrorCodeDependencyFailure, "failed to confirm sign-up").WithCause(err)
	}
	return nil
}
