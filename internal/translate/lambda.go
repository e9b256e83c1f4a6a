package translate

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/pkg/errors"
)

// Invoker is the part of *lambda.Client the translator needs.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type managerRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"sourceLang"`
	TargetLang string   `json:"targetLang"`
}

type managerResponse struct {
	Translations []string `json:"translations,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// LambdaTranslator calls a translation-manager function synchronously.
type LambdaTranslator struct {
	client       Invoker
	functionName string
}

func NewLambdaTranslator(client Invoker, functionName string) *LambdaTranslator {
	return &LambdaTranslator{client: client, functionName: functionName}
}

func (t *LambdaTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !IsSupported(source) || !IsSupported(target) {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "%s to %s", source, target)
	}

	payload, err := json.Marshal(managerRequest{
		Texts:      []string{text},
		SourceLang: source,
		TargetLang: target,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal translation request")
	}

	out, err := t.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(t.functionName),
		Payload:      payload,
	})
	if err != nil {
		return "", errors.Wrapf(err, "invoke %s", t.functionName)
	}
	if out.FunctionError != nil {
		return "", errors.Errorf("%s failed: %s", t.functionName, aws.ToString(out.FunctionError))
	}

	var resp managerResponse
	if err = json.Unmarshal(out.Payload, &resp); err != nil {
		return "", errors.Wrap(err, "parse translation response")
	}
	if resp.Error != "" {
		return "", errors.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) != 1 {
		return "", errors.Errorf("expected 1 translation, got %d", len(resp.Translations))
	}

	return resp.Translations[0], nil
}
