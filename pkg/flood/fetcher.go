package flood

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/util"
)

type Source interface {
	Fetch(ctx context.Context) ([]Reading, error)
}

// SheetFetcher. downloads the flood sheet published as csv.
type SheetFetcher struct {
	csvURL string
	client *http.Client
}

func NewSheetFetcher(csvURL string, timeout time.Duration) *SheetFetcher {
	return &SheetFetcher{
		csvURL: csvURL,
		client: &http.Client{Timeout: timeout},
	}
}

// bustCache. the sheet is served through a cdn, a unique query string forces a fresh copy.
func (f *SheetFetcher) bustCache(now time.Time) (string, error) {
	u, err := url.Parse(f.csvURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	q.Set("r", strconv.FormatFloat(rand.Float64(), 'f', -1, 64))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (f *SheetFetcher) Fetch(ctx context.Context) ([]Reading, error) {
	target, err := f.bustCache(time.Now())
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid flood csv url %q", f.csvURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "build flood request: %v", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "fetch flood data: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, util.WrapErrorf(fmt.Errorf("status %d", resp.StatusCode), util.ErrInternalServerError,
			"flood sheet responded with status %d", resp.StatusCode)
	}

	return ParseCSV(resp.Body)
}
