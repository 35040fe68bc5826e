package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/worker"
)

const jsonProfile = `{
  "企业基本信息": {
    "企业名称": "维斯登光电有限公司",
    "法人代表": "陈建",
    "注册资本": "5000万人民币",
    "成立日期": "2015-06-01",
    "经营状态": "存续",
    "统一社会信用代码": "91320500MA1XXXXXX1",
    "注册地址": "江苏省苏州市工业园区星湖街1号",
    "行业": "光电子器件制造"
  }
}`

func TestJSONSource_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "维斯登光电", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, jsonProfile)
	}))
	defer server.Close()

	src := NewJSONSource("api", server.URL+"/enterprise", testFetcher())
	entry, err := src.Lookup(context.Background(), "维斯登光电")
	require.NoError(t, err)

	assert.Equal(t, "维斯登光电有限公司", entry.Name)
	assert.Equal(t, model.OriginRegistry, entry.Origin)
	assert.Equal(t, "陈建", entry.Attributes.LegalRepresentative)
	assert.Equal(t, "5000万人民币", entry.Attributes.RegisteredCapital)
	assert.Equal(t, "光电子器件制造", entry.Attributes.Industry)
	assert.Equal(t, "api", src.Name())
}

func TestJSONSource_EmptyNameIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"企业基本信息": {}}`)
	}))
	defer server.Close()

	_, err := NewJSONSource("api", server.URL, testFetcher()).Lookup(context.Background(), "无此公司")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestJSONSource_Failures(t *testing.T) {
	noSleep(t)
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"404", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }, model.ErrNotFound},
		{"500", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }, model.ErrExternalUnavailable},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { _, _ = fmt.Fprint(w, "<html>") }, model.ErrExternalUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewJSONSource("api", server.URL, testFetcher()).Lookup(context.Background(), "维斯登")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

const profilePage = `<html><body>
<h1>企业详情</h1>
<table>
  <tr><th>企业名称</th><td>东京电子(上海)有限公司</td></tr>
  <tr><th>法定代表人：</th><td> 佐藤 </td><th>成立日期</th><td>1996-03-18</td></tr>
  <tr><td>注册资本</td><td>3000万美元</td></tr>
</table>
<dl><dt>统一社会信用代码</dt><dd>91310000607200000X</dd><dt>住所</dt><dd>上海市浦东新区</dd></dl>
</body></html>`

func TestParsePage(t *testing.T) {
	entry, err := ParsePage([]byte(profilePage))
	require.NoError(t, err)

	assert.Equal(t, "东京电子(上海)有限公司", entry.Name)
	assert.Equal(t, "佐藤", entry.Attributes.LegalRepresentative)
	assert.Equal(t, "1996-03-18", entry.Attributes.EstablishmentDate)
	assert.Equal(t, "3000万美元", entry.Attributes.RegisteredCapital)
	assert.Equal(t, "91310000607200000X", entry.Attributes.CreditCode)
	assert.Equal(t, "上海市浦东新区", entry.Attributes.Address)
}

func TestParsePage_NoProfile(t *testing.T) {
	entry, err := ParsePage([]byte("<html><body><p>没有找到</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, entry.Name)
}

func TestPageSource_Lookup(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, profilePage)
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		t.Error("disallowed path was fetched")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := testFetcher()
	robots := NewRobotsChecker("test-agent", f.Client())

	entry, err := NewPageSource("page", server.URL+"/detail", f, robots, nil).Lookup(context.Background(), "东京电子")
	require.NoError(t, err)
	assert.Equal(t, "东京电子(上海)有限公司", entry.Name)

	_, err = NewPageSource("page", server.URL+"/private", f, robots, nil).Lookup(context.Background(), "东京电子")
	assert.ErrorIs(t, err, model.ErrExternalUnavailable)
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	rc := NewRobotsChecker("test-agent", http.DefaultClient)
	allowed, delay, err := rc.CanFetch(context.Background(), server.URL+"/anything")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, delay)
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nCrawl-delay: 0.2\nDisallow: /private\n")
	}))
	defer server.Close()

	rc := NewRobotsChecker("test-agent", http.DefaultClient)
	allowed, delay, err := rc.CanFetch(context.Background(), server.URL+"/detail")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.InDelta(t, float64(200*time.Millisecond), float64(delay), float64(time.Millisecond))
}

func TestPageSource_HonorsCrawlDelay(t *testing.T) {
	var fetches int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nCrawl-delay: 0.2\n")
	})
	mux.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = fmt.Fprint(w, profilePage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := testFetcher()
	src := NewPageSource("page", server.URL+"/detail", f, NewRobotsChecker("test-agent", f.Client()), worker.NewLimiter(100, 5))

	start := time.Now()
	for _, q := range []string{"东京电子", "东京电子上海"} {
		_, err := src.Lookup(context.Background(), q)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestPageSource_CrawlDelayPastDeadline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nCrawl-delay: 60\n")
	})
	mux.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, profilePage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := testFetcher()
	src := NewPageSource("page", server.URL+"/detail", f, NewRobotsChecker("test-agent", f.Client()), worker.NewLimiter(100, 5))

	_, err := src.Lookup(context.Background(), "东京电子")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = src.Lookup(ctx, "东京电子")
	assert.ErrorIs(t, err, model.ErrExternalUnavailable)
}
