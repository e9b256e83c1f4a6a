package translate

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invokeFunc func(ctx context.Context, in *lambda.InvokeInput) (*lambda.InvokeOutput, error)

func (f invokeFunc) Invoke(ctx context.Context, in *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	return f(ctx, in)
}

func TestLambdaTranslator_Translate(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		out     *lambda.InvokeOutput
		err     error
		want    string
		wantErr bool
	}{
		{
			name:   "success",
			target: "fr",
			out:    &lambda.InvokeOutput{Payload: []byte(`{"translations":["Liverpool (fr)"]}`)},
			want:   "Liverpool (fr)",
		},
		{
			name:    "invoke error",
			target:  "fr",
			err:     errors.New("throttled"),
			wantErr: true,
		},
		{
			name:    "function error",
			target:  "fr",
			out:     &lambda.InvokeOutput{FunctionError: aws.String("Unhandled"), Payload: []byte(`{}`)},
			wantErr: true,
		},
		{
			name:    "translator reported error",
			target:  "fr",
			out:     &lambda.InvokeOutput{Payload: []byte(`{"error":"no translator for en→fr"}`)},
			wantErr: true,
		},
		{
			name:    "no translations",
			target:  "fr",
			out:     &lambda.InvokeOutput{Payload: []byte(`{"translations":[]}`)},
			wantErr: true,
		},
		{
			name:    "unsupported target",
			target:  "xx",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			tr := NewLambdaTranslator(invokeFunc(func(_ context.Context, in *lambda.InvokeInput) (*lambda.InvokeOutput, error) {
				calls++
				assert.Equal(t, "translation-manager", aws.ToString(in.FunctionName))

				var req managerRequest
				require.NoError(t, json.Unmarshal(in.Payload, &req))
				assert.Equal(t, managerRequest{Texts: []string{"Liverpool"}, SourceLang: "en", TargetLang: tt.target}, req)
				return tt.out, tt.err
			}), "translation-manager")

			got, err := tr.Translate(context.Background(), "Liverpool", "en", tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestUnsupportedLanguageSkipsInvoke(t *testing.T) {
	tr := NewLambdaTranslator(invokeFunc(func(context.Context, *lambda.InvokeInput) (*lambda.InvokeOutput, error) {
		t.Fatal("must not be invoked")
		return nil, nil
	}), "fn")

	_, err := tr.Translate(context.Background(), "x", "en", "zz")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "de")
	assert.Contains(t, langs, "fr")
	assert.IsIncreasing(t, langs)
	assert.False(t, IsSupported("zz"))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled().Translate(context.Background(), "a", "en", "fr")
	assert.ErrorIs(t, err, ErrDisabled)
}
