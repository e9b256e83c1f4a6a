// Command lambda serves the clubs API behind API Gateway. Proxy events are
// replayed onto the echo router; warmup events are answered directly.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/app"
	"github.com/yakoovad/club-api/internal/config"
	"github.com/yakoovad/club-api/internal/warmup"
	"github.com/yakoovad/club-api/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	a, err := app.New(context.Background(), cfg, log, version)
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}
	defer a.Close()

	var warmer *warmup.Warmer
	if cfg.Warmup.Enabled {
		warmer = warmup.NewWarmer(lambdasdk.NewFromConfig(a.AWS), os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))
	}

	h := &handler{
		proxy:  echoadapter.New(a.Echo),
		warmer: warmer,
		logger: log,
	}
	lambda.Start(h.Handle)
}

type handler struct {
	proxy  *echoadapter.EchoLambda
	warmer *warmup.Warmer
	logger *zap.Logger
}

func (h *handler) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	ctx = logger.WithLogger(ctx, h.logger)

	if ev, ok := warmup.Detect(event); ok {
		res := &warmup.Response{Status: "warm", InstancesWarmed: 1}
		if h.warmer != nil {
			res = h.warmer.Handle(ctx, ev)
		}
		body, err := json.Marshal(res)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(body)}, nil
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil {
		h.logger.Error("unexpected event", zap.Error(err))
		return events.APIGatewayProxyResponse{}, errors.Wrap(err, "decode proxy event")
	}

	return h.proxy.ProxyWithContext(ctx, req)
}
