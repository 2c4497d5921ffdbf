package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMath/internal/model"
)

const chartJSON = `{"chart":{"result":[{"timestamp":[1704326400,1704153600,1704240000,1704412800],
"indicators":{"quote":[{
"open":[103.0,100.0,101.0,null],
"high":[104.0,101.0,102.0,null],
"low":[102.0,99.0,100.0,null],
"close":[103.5,100.5,101.5,null],
"volume":[300,100,200,null]}]}}],"error":null}}`

func newYahooTestServer(t *testing.T, status int, body string) (*YahooFetcher, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL
	return f, &gotPath
}

func TestYahooFetcher_FetchBars(t *testing.T) {
	f, path := newYahooTestServer(t, http.StatusOK, chartJSON)

	bars, err := f.FetchBars(context.Background(), "SPX", model.Period6Mo)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC?interval=1d&range=6mo", *path)
	require.Len(t, bars, 3)
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 101.5, bars[1].Close)
	assert.Equal(t, 103.5, bars[2].Close)
	assert.Equal(t, 300.0, bars[2].Volume)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time))
	}
}

func TestYahooFetcher_NotFound(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	f, _ := newYahooTestServer(t, http.StatusNotFound, body)

	_, err := f.FetchBars(context.Background(), "NOPE", model.Period1Y)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestYahooFetcher_ServerError(t *testing.T) {
	f, _ := newYahooTestServer(t, http.StatusInternalServerError, "boom")

	_, err := f.FetchBars(context.Background(), "AAPL", model.Period1Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestYahooFetcher_EmptyResult(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`
	f, _ := newYahooTestServer(t, http.StatusOK, body)

	bars, err := f.FetchBars(context.Background(), "AAPL", model.Period1Mo)
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestYahooFetcher_UnsupportedPeriod(t *testing.T) {
	f, _ := newYahooTestServer(t, http.StatusOK, chartJSON)

	_, err := f.FetchBars(context.Background(), "AAPL", model.Period("3d"))
	assert.Error(t, err)
}

func TestDedupeByTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: ts, Close: 1},
		{Time: ts, Close: 2},
		{Time: ts.AddDate(0, 0, 1), Close: 3},
	}
	out := dedupeByTime(bars)
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Close)
	assert.Equal(t, 3.0, out[1].Close)
}
