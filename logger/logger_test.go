package logger

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/pipelog/core"
	"github.com/philipp01105/pipelog/filter"
	"github.com/philipp01105/pipelog/formatter"
)

const thisPackage = "github.com/philipp01105/pipelog/logger"

// syncBuffer is a bytes.Buffer safe for the async consumer and the test
// goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newTestLogger(spec string, w *syncBuffer) *Logger {
	return NewBuilder().
		WithSpec(spec).
		WithWriter(w).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})).
		Build()
}

func TestLogger_DefaultSpecIsErrorsOnly(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("", &out)

	log.Warn("hidden")
	log.Info("hidden")
	log.Error("shown")

	assert.Equal(t, "- [ERROR] "+thisPackage+": shown\n", out.String())
	assert.Equal(t, ErrorLevel, log.MaxLevel())
}

func TestLogger_CallerPackageIsTarget(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("warn,"+thisPackage+"=debug", &out)

	log.Debug("debug from this package")
	log.Trace("trace is above the directive")

	assert.Equal(t, []string{"- [DEBUG] " + thisPackage + ": debug from this package"}, out.Lines())
	assert.True(t, log.Enabled(thisPackage, DebugLevel))
	assert.False(t, log.Enabled("github.com/other", InfoLevel))
	assert.Empty(t, log.Target())
}

func TestLogger_NamedLongestPrefix(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info,crate1=off,crate2=warn,crate2::inner=trace,crate3", &out)
	assert.Equal(t, TraceLevel, log.MaxLevel())

	log.Named("crate1").Error("crate1 off")
	log.Named("crate2::x").Info("crate2 info")
	log.Named("crate2::x").Warn("crate2 warn")
	log.Named("crate2::inner::y").Trace("inner trace")
	log.Named("crate3").Trace("crate3 trace")
	log.Named("crate4").Debug("crate4 debug")
	log.Named("crate4").Info("crate4 info")

	assert.Equal(t, []string{
		"- [WARN] crate2::x: crate2 warn",
		"- [TRACE] crate2::inner::y: inner trace",
		"- [TRACE] crate3: crate3 trace",
		"- [INFO] crate4: crate4 info",
	}, out.Lines())
	assert.Equal(t, "crate3", log.Named("crate3").Target())
}

func TestLogger_GoogleFormatByDefault(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().WithSpec("info").WithWriter(&out).WithTarget("app").Build()

	log.Info("ready")

	line := out.String()
	assert.Regexp(t, `^I\d{4} \d{6}\.\d{3} \d+ app\] ready\n$`, line)
}

func TestLogger_Fields(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().
		WithSpec("trace").
		WithWriter(&out).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})).
		WithTarget("app").
		WithFields(String("service", "api")).
		Build()

	log.Info("request",
		Int("status", 200),
		Bool("cached", true),
		Duration("elapsed", 1500*time.Millisecond),
		Err(errors.New("none")),
		Any("tags", []string{"a", "b"}),
	)

	assert.Equal(t, "- [INFO] app: request service=api status=200 cached=true elapsed=1.5s error=none tags=[a b]\n", out.String())
}

func TestLogger_ImmutableWith(t *testing.T) {
	var out syncBuffer
	parent := newTestLogger("info", &out).Named("app")
	child := parent.With(String("request_id", "123"))
	grandchild := child.With(String("user", "bob"))

	parent.Info("parent")
	child.Info("child")
	grandchild.Info("grandchild")

	assert.Equal(t, []string{
		"- [INFO] app: parent",
		"- [INFO] app: child request_id=123",
		"- [INFO] app: grandchild request_id=123 user=bob",
	}, out.Lines())
}

func TestLogger_FormattedLogging(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("trace", &out).Named("app")

	log.Tracef("t%d", 1)
	log.Debugf("d%d", 2)
	log.Infof("i%d", 3)
	log.Warnf("w%d", 4)
	log.Errorf("e%d", 5)
	log.Log(InfoLevel, "plain", Int("n", 6))

	assert.Equal(t, []string{
		"- [TRACE] app: t1",
		"- [DEBUG] app: d2",
		"- [INFO] app: i3",
		"- [WARN] app: w4",
		"- [ERROR] app: e5",
		"- [INFO] app: plain n=6",
	}, out.Lines())
}

func TestLogger_OffLevelRecordsAreDropped(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("trace", &out)

	log.Log(OffLevel, "never")
	log.Emit(&core.Record{Level: OffLevel, Target: "app", Message: "never"})

	assert.Empty(t, out.String())
}

func TestLogger_Caller(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().
		WithSpec("info").
		WithWriter(&out).
		WithCaller(true).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-", IncludeCaller: true})).
		Build()

	log.Info("where")
	log.Infof("where %s", "f")

	lines := out.Lines()
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, thisPackage+": [logger_test.go:")
	}
}

// wrapper logs through an extra frame.
func wrapper(l *Logger, msg string) {
	l.Info(msg)
}

func TestLogger_CallerSkip(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().
		WithSpec("info").
		WithWriter(&out).
		WithCaller(true).
		WithCallerSkip(1).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-", IncludeCaller: true})).
		Build()

	wrapper(log, "wrapped")

	assert.Contains(t, out.String(), "[logger_test.go:")
	assert.Contains(t, out.String(), thisPackage+":")
}

func TestLogger_TruncatesHugeMessage(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info", &out).Named("app")

	log.Info(strings.Repeat("é", core.MaxEntrySize), String("lost", "x"))

	line := out.String()
	assert.Len(t, line, core.MaxEntrySize-1, "é is two bytes; the odd byte left over stays unused")
	assert.True(t, strings.HasSuffix(line, "é\n"))
	assert.NotContains(t, line, "lost=x")
}

type brokenFormatter struct{}

func (brokenFormatter) Format(*core.Record, *core.EntryBuf) error {
	return errors.New("cannot render")
}

func TestLogger_FormatterErrorDropsEntry(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().WithSpec("info").WithWriter(&out).WithFormatter(brokenFormatter{}).Build()

	assert.NotPanics(t, func() { log.Error("dropped") })
	assert.Empty(t, out.String())
	assert.Zero(t, log.Stats().EntriesTotal)
}

func TestLogger_Diagnostics(t *testing.T) {
	var diag bytes.Buffer
	log := NewBuilder().WithSpec("warn,x=bogus").WithDiagnostics(&diag).WithWriter(&syncBuffer{}).Build()

	assert.Equal(t, "logging directive \"x=bogus\" has unparseable log level\n", diag.String())
	assert.Equal(t, WarnLevel, log.MaxLevel())
}

func TestLogger_WithSpecification(t *testing.T) {
	var out syncBuffer
	spec := filter.CompileWithDiagnostics("app=debug", nil)
	log := NewBuilder().WithSpecification(spec).WithWriter(&out).Build()

	assert.Same(t, spec, log.Specification())
	assert.True(t, log.Enabled("app/store", DebugLevel))
	assert.False(t, log.Enabled("other", ErrorLevel))
}

func TestLogger_Emit(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info,noisy=error", &out).With(String("ignored", "yes"))

	log.Emit(&core.Record{Level: InfoLevel, Target: "app", Message: "emitted"})
	log.Emit(&core.Record{Level: InfoLevel, Target: "noisy", Message: "filtered"})

	assert.Equal(t, "- [INFO] app: emitted\n", out.String(), "the logger's own fields do not apply")
}

func TestLogger_AsyncConcurrentProducers(t *testing.T) {
	const producers, perProducer = 8, 500

	var out syncBuffer
	log := newTestLogger("info", &out).Named("app")

	func() {
		defer log.Async().End()

		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					log.Info("entry", Int("p", p), Int("i", i))
				}
			}(p)
		}
		wg.Wait()
	}()

	lines := out.Lines()
	require.Len(t, lines, producers*perProducer)
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "- [INFO] app: entry p="), line)
		require.False(t, seen[line], "duplicate %q", line)
		seen[line] = true
	}
	for p := 0; p < producers; p++ {
		assert.True(t, seen[fmt.Sprintf("- [INFO] app: entry p=%d i=%d", p, perProducer-1)])
	}
}

func TestLogger_AsyncScope(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info", &out).Named("app")

	scope := log.Async()
	assert.PanicsWithValue(t, "handler: async mode enabled twice", func() { log.Async() })

	log.Info("queued")
	log.Flush()
	assert.Equal(t, "- [INFO] app: queued\n", out.String())

	scope.End()
	scope.End()

	// A fresh scope may start after the previous one ended.
	log.Async().End()
	log.Info("sync again")
	assert.Equal(t, "- [INFO] app: queued\n- [INFO] app: sync again\n", out.String())
}

func TestLogger_DerivedLoggersShareMode(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info", &out)
	child := log.Named("child").With(String("k", "v"))

	scope := child.Async()
	assert.Panics(t, func() { log.Async() }, "parent and child share one exchange")
	scope.End()
}

type closeRecorder struct {
	syncBuffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestLogger_Close(t *testing.T) {
	out := &closeRecorder{}
	log := NewBuilder().WithSpec("info").WithWriter(out).WithTarget("app").
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})).Build()

	log.Async()
	log.Info("drained on close")
	require.NoError(t, log.Close())

	assert.True(t, out.closed)
	assert.Equal(t, "- [INFO] app: drained on close\n", out.String())
}

func TestLogger_Fatal(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info", &out).Named("app")

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	scope := log.Async()
	defer scope.End()
	log.Fatal("fatal error", String("key", "value"))

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "- [ERROR] app: fatal error key=value\n", out.String(), "fatal drains before exiting")
}

func TestLogger_Panic(t *testing.T) {
	var out syncBuffer
	log := newTestLogger("info", &out).Named("app")

	assert.PanicsWithValue(t, "panic message", func() { log.Panic("panic message") })
	assert.Equal(t, "- [ERROR] app: panic message\n", out.String())
}

func TestLogger_WithCoarseClock(t *testing.T) {
	var out syncBuffer
	log := NewBuilder().
		WithSpec("info").
		WithWriter(&out).
		WithTarget("app").
		WithCoarseClock(true).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{})).
		Build()

	log.Info("coarse clock message", String("key", "value"))

	line := out.String()
	assert.Contains(t, line, " [INFO] app: coarse clock message key=value")
	ts, _, ok := strings.Cut(line, " ")
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 2*time.Second)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, l)

	_, err = ParseLevel("fatal")
	assert.ErrorIs(t, err, core.ErrInvalidLevel)
}
