// Package authorizer implements the API Gateway REQUEST authorizer that guards
// the clubs routes. The identity source is the cookie header.
package authorizer

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/auth"
	"github.com/yakoovad/club-api/pkg/logger"
)

const (
	policyVersion = "2012-10-17"
	invokeAction  = "execute-api:Invoke"

	EffectAllow = "Allow"
	EffectDeny  = "Deny"

	anonymous = "anonymous"
)

type Authorizer struct {
	auth       *auth.Authenticator
	cookieName string
}

func New(a *auth.Authenticator, cookieName string) *Authorizer {
	return &Authorizer{auth: a, cookieName: cookieName}
}

// Handle allows the call when the cookie header carries a valid session token
// and denies it otherwise. The token subject becomes the principal id.
func (z *Authorizer) Handle(ctx context.Context, req events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	l := logger.FromContext(ctx).With(zap.String("method_arn", req.MethodArn))

	header := cookieHeader(req.Headers)
	if header == "" {
		l.Info("no cookie header, denying")
		return policy(anonymous, EffectDeny, req.MethodArn), nil
	}

	token, err := auth.TokenFromCookieHeader(header, z.cookieName)
	if err != nil {
		l.Info("no session token, denying", zap.Error(err))
		return policy(anonymous, EffectDeny, req.MethodArn), nil
	}

	subject, ok := z.auth.Subject(token)
	if !ok {
		l.Info("invalid session token, denying")
		return policy(anonymous, EffectDeny, req.MethodArn), nil
	}

	l.Debug("allowing", zap.String("principal", subject))
	return policy(subject, EffectAllow, req.MethodArn), nil
}

// cookieHeader looks the header up case-insensitively; API Gateway keeps the
// client's spelling.
func cookieHeader(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "cookie") {
			return v
		}
	}
	return ""
}

func policy(principal, effect, resource string) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principal,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: policyVersion,
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{invokeAction},
					Effect:   effect,
					Resource: []string{resource},
				},
			},
		},
	}
}
