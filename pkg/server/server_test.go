package server

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/pipeline"
	"github.com/matzehuels/wordwall/pkg/translate"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

type fakeProvider struct{ calls atomic.Int32 }

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-1" }
func (f *fakeProvider) Translate(_ context.Context, word, _ string) (string, error) {
	f.calls.Add(1)
	return "译" + word, nil
}

func newTestServer(t *testing.T, tr *translate.Translator, words ...vocab.Word) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	store, err := vocab.Open(context.Background(), vocab.NewMemoryBackend(words...), vocab.Options{Logger: logger})
	if err != nil {
		t.Fatalf("vocab.Open: %v", err)
	}
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	s := New(store, runner, Options{
		Pipeline:   pipeline.Options{Measure: pipeline.MeasureEstimate, Width: 600, Height: 400},
		Translator: tr,
		Logger:     logger,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.relayout.stop()
	})
	return s, ts
}

func sample() []vocab.Word {
	return []vocab.Word{
		{Text: "Hello", Translation: "你好"},
		{Text: "Thank you", Translation: "谢谢", Mastered: true},
		{Text: "Water", Translation: "水"},
	}
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestListAndGet(t *testing.T) {
	_, ts := newTestServer(t, nil, sample()...)

	resp := do(t, http.MethodGet, ts.URL+"/api/words", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	words := decodeBody[[]vocab.Word](t, resp)
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/words/"+words[1].ID, "")
	got := decodeBody[vocab.Word](t, resp)
	if got.Text != "Thank you" || !got.Mastered {
		t.Errorf("GET by id = %+v", got)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/words/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing word status = %d, want 404", resp.StatusCode)
	}
}

func TestListSearch(t *testing.T) {
	_, ts := newTestServer(t, nil, sample()...)

	tests := []struct {
		q    string
		want int
	}{
		{"", 3},
		{"WAT", 1},
		{"%E8%B0%A2", 1},
		{"nothing", 0},
	}
	for _, tt := range tests {
		resp := do(t, http.MethodGet, ts.URL+"/api/words?q="+tt.q, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("q=%s: status = %d", tt.q, resp.StatusCode)
		}
		if words := decodeBody[[]vocab.Word](t, resp); len(words) != tt.want {
			t.Errorf("q=%s: got %d words, want %d", tt.q, len(words), tt.want)
		}
	}
}

func TestAddUpdateRemove(t *testing.T) {
	s, ts := newTestServer(t, nil)

	resp := do(t, http.MethodPost, ts.URL+"/api/words", `{"word":"Tree","translation":"树"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d", resp.StatusCode)
	}
	w := decodeBody[vocab.Word](t, resp)

	resp = do(t, http.MethodPost, ts.URL+"/api/words", `{"word":"tree","translation":"木"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}

	resp = do(t, http.MethodPut, ts.URL+"/api/words/"+w.ID, `{"word":"Tree","translation":"树木"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	if got := decodeBody[vocab.Word](t, resp); got.Translation != "树木" {
		t.Errorf("translation = %q", got.Translation)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/words/"+w.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}
	if s.store.Len() != 0 {
		t.Errorf("Len() = %d after remove", s.store.Len())
	}
}

func TestAddRejectsBadBodies(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"word":`},
		{"unknown field", `{"word":"a","translation":"b","extra":1}`},
		{"empty word", `{"word":"  ","translation":"b"}`},
		{"missing translation", `{"word":"Tree"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/words", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			body := decodeBody[errorBody](t, resp)
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestAddSuggestsTranslation(t *testing.T) {
	p := &fakeProvider{}
	tr := translate.New(p, translate.Options{Logger: log.New(io.Discard)})
	_, ts := newTestServer(t, tr)

	resp := do(t, http.MethodPost, ts.URL+"/api/words", `{"word":"Tree"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if w := decodeBody[vocab.Word](t, resp); w.Translation != "译Tree" {
		t.Errorf("translation = %q", w.Translation)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/translate?word=Sky", "")
	got := decodeBody[wordRequest](t, resp)
	if got.Translation != "译Sky" {
		t.Errorf("suggestion = %q", got.Translation)
	}
	if n := p.calls.Load(); n != 2 {
		t.Errorf("provider calls = %d, want 2", n)
	}
}

func TestTranslateWithoutProvider(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/api/translate?word=Sky", "")
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}

func TestMasteredAndStats(t *testing.T) {
	s, ts := newTestServer(t, nil, sample()...)
	id := s.store.All()[0].ID

	resp := do(t, http.MethodPost, ts.URL+"/api/words/"+id+"/mastered", "")
	if w := decodeBody[vocab.Word](t, resp); !w.Mastered {
		t.Error("word not mastered")
	}

	stats := decodeBody[vocab.Stats](t, do(t, http.MethodGet, ts.URL+"/api/stats", ""))
	if stats.Total != 3 || stats.Mastered != 2 || stats.Percent != 67 {
		t.Errorf("stats = %+v", stats)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/words/"+id+"/mastered", "")
	if w := decodeBody[vocab.Word](t, resp); w.Mastered {
		t.Error("word still mastered")
	}

	reset := decodeBody[resetResponse](t, do(t, http.MethodPost, ts.URL+"/api/reset", ""))
	if reset.Reset != 1 {
		t.Errorf("reset = %d, want 1", reset.Reset)
	}
	if s.store.Stats().Mastered != 0 {
		t.Error("reset left mastered words")
	}
}

func TestClear(t *testing.T) {
	s, ts := newTestServer(t, nil, sample()...)
	resp := do(t, http.MethodDelete, ts.URL+"/api/words", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if s.store.Len() != 0 {
		t.Errorf("Len() = %d", s.store.Len())
	}
}

func TestWallSVG(t *testing.T) {
	_, ts := newTestServer(t, nil, sample()...)

	resp := do(t, http.MethodGet, ts.URL+"/wall.svg?style=dark&seed=7", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "Hello") {
		t.Error("response is not the rendered wall")
	}

	for _, q := range []string{"style=neon", "width=abc", "seed=-1", "width=-5"} {
		resp := do(t, http.MethodGet, ts.URL+"/wall.svg?"+q, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	_, ts := newTestServer(t, nil, sample()...)

	resp := do(t, http.MethodGet, ts.URL+"/api/layout?width=800&height=500", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Width  float64           `json:"width"`
		Height float64           `json:"height"`
		Words  []json.RawMessage `json:"words"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Width != 800 || out.Height != 500 || len(out.Words) != 3 {
		t.Errorf("layout = %vx%v with %d words", out.Width, out.Height, len(out.Words))
	}
}

func TestExportImport(t *testing.T) {
	s, ts := newTestServer(t, nil, sample()...)

	resp := do(t, http.MethodGet, ts.URL+"/api/export?format=yaml", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, ".yaml") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	exported, _ := io.ReadAll(resp.Body)

	resp = do(t, http.MethodPost, ts.URL+"/api/import?format=txt&merge=true", "Sky = 天\nWater = 水\n")
	got := decodeBody[importResponse](t, resp)
	if got.Imported != 1 || got.Total != 4 {
		t.Errorf("merge = %+v, want 1 imported of 4", got)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/import?format=yaml", string(exported))
	got = decodeBody[importResponse](t, resp)
	if got.Total != 3 || s.store.Len() != 3 {
		t.Errorf("replace = %+v", got)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/import?format=csv", "a,b")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("csv status = %d, want 400", resp.StatusCode)
	}
}

func TestQRCode(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/qr.png", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != qrSize {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), qrSize)
	}
}

func TestVersion(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/api/version", "")
	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("version missing: %v", info)
	}
}

func TestChangesTriggerRelayout(t *testing.T) {
	s, ts := newTestServer(t, nil, sample()...)
	do(t, http.MethodPost, ts.URL+"/api/words", `{"word":"Sky","translation":"天"}`)
	s.relayout.wait()
	if s.relayout.completed.Load()+s.relayout.canceled.Load() == 0 {
		t.Error("no relayout ran after a change")
	}
}

func TestRelayouterCancelsPrevious(t *testing.T) {
	started := make(chan struct{}, 1)
	r := newRelayouter(func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return ctx.Err()
	}, log.New(io.Discard))

	r.trigger(context.Background())
	<-started
	r.trigger(context.Background())
	r.stop()

	if got := r.canceled.Load(); got != 2 {
		t.Errorf("canceled = %d, want 2", got)
	}
	if got := r.completed.Load(); got != 0 {
		t.Errorf("completed = %d, want 0", got)
	}
}
