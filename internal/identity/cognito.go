// Package identity confirms user sign-ups against a Cognito user pool.
package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfirmation covers a wrong or expired code and an unknown user.
	ErrInvalidConfirmation = errors.New("invalid confirmation")
	ErrNotConfigured       = errors.New("identity provider is not configured")
)

// notAuthorized is returned when the user is already confirmed.
const notAuthorized = "NotAuthorizedException"

type CognitoAPI interface {
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
}

type Confirmer interface {
	ConfirmSignUp(ctx context.Context, username, code string) error
}

type CognitoConfirmer struct {
	client   CognitoAPI
	clientID string
}

func NewCognitoConfirmer(client CognitoAPI, clientID string) *CognitoConfirmer {
	return &CognitoConfirmer{client: client, clientID: clientID}
}

func (c *CognitoConfirmer) ConfirmSignUp(ctx context.Context, username, code string) error {
	if c.clientID == "" {
		return ErrNotConfigured
	}

	_, err := c.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err == nil {
		return nil
	}

	var (
		mismatch *types.CodeMismatchException
		expired  *types.ExpiredCodeException
		notFound *types.UserNotFoundException
	)
	switch {
	case errors.As(err, &mismatch), errors.As(err, &expired), errors.As(err, &notFound):
		return errors.Wrap(ErrInvalidConfirmation, err.Error())
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode() == notAuthorized {
			return errors.Wrap(ErrInvalidConfirmation, apiErr.ErrorMessage())
		}
		return errors.Wrapf(err, "confirm sign-up of %s (%s)", username, apiErr.ErrorCode())
	}
	return errors.Wrapf(err, "confirm sign-up of %s", username)
}
