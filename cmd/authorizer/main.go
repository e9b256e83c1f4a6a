// Command authorizer is the API Gateway REQUEST authorizer for the clubs routes.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/yakoovad/club-api/internal/auth"
	"github.com/yakoovad/club-api/internal/authorizer"
	"github.com/yakoovad/club-api/internal/config"
	"github.com/yakoovad/club-api/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	if cfg.Auth.Secret == "" {
		panic("auth.secret is required")
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	z := authorizer.New(auth.NewAuthenticator(cfg.Auth.Secret), cfg.Auth.CookieName)
	lambda.Start(func(ctx context.Context, req events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
		return z.Handle(logger.WithLogger(ctx, log), req)
	})
}
