package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

func jsonResponse(status int, body any) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"message":"failed to encode response"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"message": message})
}

func redirectResponse(location string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusFound,
		Headers:    map[string]string{"Location": location},
	}
}

// clientIP extracts the caller address, preferring the first entry of
// X-Forwarded-For over the API Gateway source IP.
func clientIP(req events.APIGatewayProxyRequest) string {
	for name, value := range req.Headers {
		if http.CanonicalHeaderKey(name) != "X-Forwarded-For" {
			continue
		}
		first, _, _ := strings.Cut(value, ",")
		if trimmed := strings.TrimSpace(first); trimmed != "" {
			return trimmed
		}
	}
	return req.RequestContext.Identity.SourceIP
}
