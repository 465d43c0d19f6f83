package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// BrowserUserAgent desktop browser user agent, some sites reject default go client
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DownloadString download string by url, non 200 response is an error
func DownloadString(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (string, error) {
	code, buffer, err := DownloadBytes(ctx, url, headers, timeout)
	if err != nil {
		return "", err
	}

	if code != http.StatusOK {
		zap.L().Warn("unexpected response status", zap.Int("code", code), zap.String("url", url))
		return "", fmt.Errorf("unexpected response status (%d)%s", code, http.StatusText(code))
	}

	return string(buffer), nil
}

// DownloadBytes download bytes by url once, the body is only read on 200
func DownloadBytes(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (int, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		zap.L().Warn("create http request failed", zap.Error(err), zap.String("url", url))
		return 0, nil, err
	}

	request.Header.Set("User-Agent", BrowserUserAgent)
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return response.StatusCode, nil, nil
	}

	buffer, err := io.ReadAll(response.Body)
	if err != nil {
		zap.L().Warn("read http response body failed", zap.Error(err), zap.String("url", url))
		return 0, nil, err
	}

	return response.StatusCode, buffer, nil
}
