package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/shell"
	"waitingtodo/internal/testutils"
)

type fakeRuntime struct {
	mu    sync.Mutex
	calls []string
	quit  chan struct{}
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{quit: make(chan struct{}, 1)}
}

func (r *fakeRuntime) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *fakeRuntime) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func (r *fakeRuntime) WindowShow()                 { r.add("show") }
func (r *fakeRuntime) WindowHide()                 { r.add("hide") }
func (r *fakeRuntime) WindowUnminimise()           { r.add("unminimise") }
func (r *fakeRuntime) WindowSetTitle(title string) { r.add("title:" + title) }
func (r *fakeRuntime) WindowReloadApp()            { r.add("reload") }
func (r *fakeRuntime) WindowSetSize(width, height int) {
	r.add(fmt.Sprintf("size:%dx%d", width, height))
}
func (r *fakeRuntime) WindowExecJS(js string)      { r.add("js:" + js) }
func (r *fakeRuntime) Quit() {
	r.add("quit")
	r.quit <- struct{}{}
}

func TestWindows_SingleLiveWindow(t *testing.T) {
	rt := newFakeRuntime()
	windows := NewWindows(rt)
	spec := shell.WindowSpec{Title: "WaitingToDo"}
	source := shell.ContentSource{Kind: shell.SourceFile, Location: "/app/out/renderer/index.html"}

	w, err := windows.CreateWindow(context.Background(), spec)
	if err != nil {
		t.Fatalf("CreateWindow() error: %v", err)
	}
	if err := w.Load(source); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rt.list()) != 0 {
		t.Errorf("First window is served by the asset server, got calls %v", rt.list())
	}
	if w.(*Window).Source() != source {
		t.Errorf("Source() = %+v", w.(*Window).Source())
	}

	if _, err := windows.CreateWindow(context.Background(), spec); !errors.Is(err, errWindowExists) {
		t.Errorf("Expected errWindowExists, got %v", err)
	}
}

func TestWindows_RecreateAfterDestroy(t *testing.T) {
	rt := newFakeRuntime()
	windows := NewWindows(rt)
	spec := shell.WindowSpec{Title: "WaitingToDo", Width: 1200, Height: 800}

	first, _ := windows.CreateWindow(context.Background(), spec)
	first.Destroy()
	first.Destroy()

	if err := first.Load(shell.ContentSource{}); !errors.Is(err, errWindowDestroyed) {
		t.Errorf("Expected errWindowDestroyed, got %v", err)
	}

	second, err := windows.CreateWindow(context.Background(), spec)
	if err != nil {
		t.Fatalf("CreateWindow() after destroy error: %v", err)
	}
	if err := second.Load(shell.ContentSource{Kind: shell.SourceURL, Location: "http://localhost:5173"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"hide", "title:WaitingToDo", "size:1200x800", "show", "unminimise", "reload"}
	if got := rt.list(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestWindows_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewWindows(newFakeRuntime()).CreateWindow(ctx, shell.WindowSpec{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWindow_ShowHide(t *testing.T) {
	rt := newFakeRuntime()
	w := &Window{rt: rt}

	w.Hide()
	w.Show()

	if got := rt.list(); !slices.Equal(got, []string{"hide", "show", "unminimise"}) {
		t.Errorf("calls = %v", got)
	}
}

func TestAssetOptions_File(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<title>app</title>"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := AssetOptions(shell.ContentSource{Kind: shell.SourceFile, Location: filepath.Join(dir, "index.html")})
	if err != nil {
		t.Fatalf("AssetOptions() error: %v", err)
	}
	if opts.Assets == nil || opts.Handler != nil {
		t.Fatalf("Expected file assets, got %+v", opts)
	}
	f, err := opts.Assets.Open("index.html")
	if err != nil {
		t.Fatalf("Entry not served: %v", err)
	}
	f.Close()
}

func TestAssetOptions_DevServerProxy(t *testing.T) {
	devServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "dev:%s", r.URL.Path)
	}))
	defer devServer.Close()

	opts, err := AssetOptions(shell.ContentSource{Kind: shell.SourceURL, Location: devServer.URL})
	if err != nil {
		t.Fatalf("AssetOptions() error: %v", err)
	}
	if opts.Handler == nil {
		t.Fatal("Expected proxy handler")
	}

	rec := httptest.NewRecorder()
	opts.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://wails.localhost/src/main.js", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	if string(body) != "dev:/src/main.js" {
		t.Errorf("Proxied body = %q", body)
	}
}

func TestAssetOptions_Invalid(t *testing.T) {
	tests := []shell.ContentSource{
		{Kind: shell.SourceURL, Location: "localhost:5173"},
		{Kind: shell.SourceURL, Location: "::bad"},
		{Kind: shell.SourceFile, Location: ""},
		{Kind: shell.SourceKind(9), Location: "x"},
	}
	for _, source := range tests {
		if _, err := AssetOptions(source); err == nil {
			t.Errorf("Expected error for %+v", source)
		}
	}
}

type fakeRelauncher struct{ err error }

func (f *fakeRelauncher) Relaunch() error { return f.err }

func TestProcess(t *testing.T) {
	rt := newFakeRuntime()
	rec := &testutils.RecordingLogger{}
	p := NewProcess(rt, &fakeRelauncher{err: errors.New("spawn failed")}, rec)

	var exited []int
	p.exit = func(code int) { exited = append(exited, code) }

	p.RequestQuit()
	select {
	case <-rt.quit:
	case <-time.After(time.Second):
		t.Fatal("Expected graceful quit to be requested")
	}

	if err := p.Relaunch(); err == nil || err.Error() != "spawn failed" {
		t.Errorf("Relaunch() = %v", err)
	}

	p.Exit(0)
	if !slices.Equal(exited, []int{0}) {
		t.Errorf("exit codes = %v", exited)
	}
	if !rec.Contains("Exiting") {
		t.Error("Expected exit to be logged")
	}
}

func TestNotifier(t *testing.T) {
	n := NewNotifier("", "/app/resources/icon.png")

	var got []string
	n.notify = func(title, message, icon string) error {
		got = append(got, title, message, icon)
		return nil
	}

	if err := n.Notify("WaitingToDo", "still running"); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"WaitingToDo", "still running", "/app/resources/icon.png"}) {
		t.Errorf("notify args = %v", got)
	}
}

func TestTrays_InvalidIcon(t *testing.T) {
	tests := []struct {
		name string
		icon []byte
	}{
		{"empty", nil},
		{"not an image", []byte("definitely not a png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trays := NewTrays(&testutils.RecordingLogger{})
			_, err := trays.CreateTray(context.Background(), shell.TraySpec{Icon: tt.icon}, shell.TrayHandlers{})
			if apperrors.ClassifyError(err) != apperrors.ErrCodeTray {
				t.Errorf("Expected tray error, got %v", err)
			}
			if trays.created.Load() {
				t.Error("Failed creation must not consume the tray slot")
			}
		})
	}
}
